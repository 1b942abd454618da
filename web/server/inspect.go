package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Properties   map[string]interface{} `json:"properties"`
}

// pixelCenter samples the middle of every pixel
type pixelCenter struct{}

func (pixelCenter) Get1D() float64   { return 0.5 }
func (pixelCenter) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (pixelCenter) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func hexColor(c core.Vec3) string {
	clamped := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(clamped.X*255), int(clamped.Y*255), int(clamped.Z*255))
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo describes a material, evaluating textures at the hit
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		properties["texture"] = textureType(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emitted(hit.UV, hit.Point)
		properties["emission"] = vecArray(emission)
		properties["color"] = hexColor(emission)
		properties["texture"] = textureType(m.Emission)
		return "diffuse_light", properties

	default:
		return "unknown", properties
	}
}

func textureType(source material.ColorSource) string {
	switch source.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.NoiseTexture:
		return "noise"
	case *material.ImageTexture:
		return "image"
	default:
		return "unknown"
	}
}

// inspectPixel casts the unjittered primary ray through pixel (x, y) and returns the first hit
func inspectPixel(sceneObj *scene.Scene, config renderer.CameraConfig, pixelX, pixelY int) (*material.HitRecord, bool) {
	camera := renderer.NewCamera(config)
	ray := camera.GetRay(pixelX, pixelY, pixelCenter{})
	return sceneObj.World.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
}

// handleInspect reports the surface seen through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.resolveScene(req.Scene, req.Seed)
	if err != nil {
		writeSceneError(w, err)
		return
	}

	config := req.applyOverrides(sceneObj.Camera).WithDefaults()
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.ImageHeight() {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	hit, isHit := inspectPixel(sceneObj, config, pixelX, pixelY)
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material, hit)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Properties:   map[string]interface{}{"material": materialProps},
	})
}
