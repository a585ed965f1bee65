package visual

import (
	"errors"

	"Puzzle3D/internal/logger"

	"go.uber.org/zap"
)

// ErrReleaseNil is returned when a nil material is handed back to a surface.
var ErrReleaseNil = errors.New("release nil material")

// DefaultMaterial provides a basic material to fall back on.
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Alpha:         1.0,
}

// Material mirrors the surface properties the hosting renderer cares about.
// The renderer itself is an external service; this struct is the slice of its
// material state that tint components read and write.
type Material struct {
	DiffuseColor  [3]float32 // base surface color, RGB in [0,1]
	SpecularColor [3]float32 // highlight color
	Shininess     float32    // specular exponent
	Alpha         float32    // 0 transparent, 1 opaque
	Name          string     // for logs only
}

// Clone returns an independent copy. Components that mutate a material must
// clone it first so shared materials are never tinted in place.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	dup := *m
	return &dup
}

// Tintable is the capability a visual target must offer for color tinting.
// Targets that cannot be tinted simply do not implement it; callers perform
// the type assertion once and cache the result.
type Tintable interface {
	Material() *Material
	SetMaterial(*Material)
	// ReleaseMaterial hands a duplicated material back to the renderer once
	// its owner is torn down.
	ReleaseMaterial(*Material) error
}

// Surface is a minimal headless stand-in for a renderer-owned mesh surface.
// Hosts with a real renderer supply their own Tintable; tests and the demo
// binary use this one.
type Surface struct {
	Name     string
	mat      *Material
	releases int
}

// NewSurface creates a surface bound to a copy of the default material.
func NewSurface(name string) *Surface {
	return &Surface{Name: name, mat: DefaultMaterial.Clone()}
}

// NewSurfaceWithMaterial creates a surface bound to the given material.
func NewSurfaceWithMaterial(name string, mat *Material) *Surface {
	if mat == nil {
		logger.Log.Warn("Surface created without material, using default", zap.String("surface", name))
		mat = DefaultMaterial.Clone()
	}
	return &Surface{Name: name, mat: mat}
}

func (s *Surface) Material() *Material {
	return s.mat
}

func (s *Surface) SetMaterial(mat *Material) {
	s.mat = mat
}

func (s *Surface) ReleaseMaterial(mat *Material) error {
	if mat == nil {
		return ErrReleaseNil
	}
	s.releases++
	return nil
}

// Releases reports how many duplicated materials were handed back.
func (s *Surface) Releases() int {
	return s.releases
}
