package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/loaders"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// File is the YAML scene document
type File struct {
	Camera    CameraSpec              `yaml:"camera"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Objects   []ObjectSpec            `yaml:"objects"`
}

type CameraSpec struct {
	Width           int         `yaml:"width"`
	AspectRatio     float64     `yaml:"aspect_ratio"`
	SamplesPerPixel int         `yaml:"samples_per_pixel"`
	MaxDepth        int         `yaml:"max_depth"`
	LookFrom        *[3]float64 `yaml:"look_from,omitempty"`
	LookAt          [3]float64  `yaml:"look_at"`
	Up              [3]float64  `yaml:"up"`
	VFov            float64     `yaml:"vfov"`
	DefocusAngle    float64     `yaml:"defocus_angle"`
	FocusDistance   float64     `yaml:"focus_distance"`
	Background      *[3]float64 `yaml:"background,omitempty"`
}

type MaterialSpec struct {
	Type     string       `yaml:"type"` // lambertian, metal, dielectric, diffuse_light
	Albedo   *[3]float64  `yaml:"albedo,omitempty"`
	Texture  *TextureSpec `yaml:"texture,omitempty"`
	Fuzz     float64      `yaml:"fuzz,omitempty"`
	IOR      float64      `yaml:"ior,omitempty"`
	Emission *[3]float64  `yaml:"emission,omitempty"`
}

type TextureSpec struct {
	Type  string      `yaml:"type"` // solid, checker, noise, image
	Color *[3]float64 `yaml:"color,omitempty"`
	Scale float64     `yaml:"scale,omitempty"`
	Even  *[3]float64 `yaml:"even,omitempty"`
	Odd   *[3]float64 `yaml:"odd,omitempty"`
	Seed  *int64      `yaml:"seed,omitempty"`
	Path  string      `yaml:"path,omitempty"`
}

type ObjectSpec struct {
	Type     string `yaml:"type"` // sphere, quad, box
	Material string `yaml:"material"`

	Center [3]float64 `yaml:"center,omitempty"`
	Radius float64    `yaml:"radius,omitempty"`

	Corner [3]float64 `yaml:"corner,omitempty"`
	U      [3]float64 `yaml:"u,omitempty"`
	V      [3]float64 `yaml:"v,omitempty"`

	Min [3]float64 `yaml:"min,omitempty"`
	Max [3]float64 `yaml:"max,omitempty"`

	RotateY   float64     `yaml:"rotate_y,omitempty"` // Degrees, applied before Translate
	Translate *[3]float64 `yaml:"translate,omitempty"`
}

// LoadFile reads and builds a YAML scene. Relative texture paths resolve against the file's directory.
func LoadFile(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("while reading scene file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := Parse(bytes.NewReader(data), name, filepath.Dir(path), opts)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}
	s.Assets = append([]string{path}, s.Assets...)
	return s, nil
}

// Parse decodes a YAML scene from r. Unknown keys are rejected.
func Parse(r io.Reader, name, baseDir string, opts Options) (*Scene, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("while parsing scene YAML: %w", err)
	}

	b := &fileBuilder{baseDir: baseDir, opts: opts, materials: map[string]material.Material{}}

	// Sorted so the first reported error is stable
	names := make([]string, 0, len(file.Materials))
	for n := range file.Materials {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		m, err := b.material(file.Materials[n])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", n, err)
		}
		b.materials[n] = m
	}

	objects := make([]geometry.Hittable, 0, len(file.Objects))
	for i, spec := range file.Objects {
		obj, err := b.object(spec)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Type, err)
		}
		objects = append(objects, obj)
	}

	s := New(name, file.Camera.config(), objects)
	s.Assets = b.assets
	return s, nil
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func (c CameraSpec) config() renderer.CameraConfig {
	config := renderer.CameraConfig{
		Width:           c.Width,
		AspectRatio:     c.AspectRatio,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		LookAt:          vec(c.LookAt),
		Up:              vec(c.Up),
		VFov:            c.VFov,
		DefocusAngle:    c.DefocusAngle,
		FocusDistance:   c.FocusDistance,
	}
	if c.LookFrom != nil {
		lookFrom := vec(*c.LookFrom)
		config.LookFrom = &lookFrom
	}
	if c.Background != nil {
		background := vec(*c.Background)
		config.Background = &background
	}
	return config
}

// fileBuilder turns decoded specs into scene values
type fileBuilder struct {
	baseDir   string
	opts      Options
	materials map[string]material.Material
	assets    []string
}

func (b *fileBuilder) material(spec MaterialSpec) (material.Material, error) {
	switch spec.Type {
	case "lambertian":
		texture, err := b.colorSource(spec.Albedo, spec.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(texture), nil
	case "metal":
		if spec.Albedo == nil {
			return nil, errors.New("metal needs an albedo")
		}
		return material.NewMetal(vec(*spec.Albedo), spec.Fuzz), nil
	case "dielectric":
		if spec.IOR <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %v", spec.IOR)
		}
		return material.NewDielectric(spec.IOR), nil
	case "diffuse_light":
		texture, err := b.colorSource(spec.Emission, spec.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedDiffuseLight(texture), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", spec.Type)
	}
}

// colorSource uses the texture if present, otherwise the constant color
func (b *fileBuilder) colorSource(color *[3]float64, spec *TextureSpec) (material.ColorSource, error) {
	if spec != nil {
		return b.texture(*spec)
	}
	if color == nil {
		return nil, errors.New("needs a color or a texture")
	}
	return material.NewSolidColor(vec(*color)), nil
}

func (b *fileBuilder) texture(spec TextureSpec) (material.ColorSource, error) {
	switch spec.Type {
	case "solid":
		if spec.Color == nil {
			return nil, errors.New("solid texture needs a color")
		}
		return material.NewSolidColor(vec(*spec.Color)), nil
	case "checker":
		if spec.Even == nil || spec.Odd == nil {
			return nil, errors.New("checker texture needs even and odd colors")
		}
		if spec.Scale <= 0 {
			return nil, fmt.Errorf("checker texture needs a positive scale, got %v", spec.Scale)
		}
		return material.NewSolidCheckerTexture(spec.Scale, vec(*spec.Even), vec(*spec.Odd)), nil
	case "noise":
		seed := b.opts.Seed
		if spec.Seed != nil {
			seed = *spec.Seed
		}
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewNoiseTexture(scale, seed), nil
	case "image":
		path := spec.Path
		if path == "" {
			return nil, &loaders.AssetLoadError{Path: path, Err: ErrNoTexture}
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.baseDir, path)
		}
		img, err := loaders.LoadImage(path)
		if err != nil {
			return nil, err
		}
		b.assets = append(b.assets, path)
		return material.NewImageTexture(img), nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", spec.Type)
	}
}

func (b *fileBuilder) object(spec ObjectSpec) (geometry.Hittable, error) {
	mat, ok := b.materials[spec.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", spec.Material)
	}

	var obj geometry.Hittable
	switch spec.Type {
	case "sphere":
		obj = geometry.NewSphere(vec(spec.Center), spec.Radius, mat)
	case "quad":
		obj = geometry.NewQuad(vec(spec.Corner), vec(spec.U), vec(spec.V), mat)
	case "box":
		obj = geometry.NewQuadBox(vec(spec.Min), vec(spec.Max), mat)
	default:
		return nil, fmt.Errorf("unknown object type %q", spec.Type)
	}

	if spec.RotateY != 0 {
		obj = geometry.NewRotateY(obj, spec.RotateY)
	}
	if spec.Translate != nil {
		obj = geometry.NewTranslate(obj, vec(*spec.Translate))
	}
	return obj, nil
}
