// Package arena implements the per-pixel scratch allocator that backs
// BSDFs and their lobes: a fixed-capacity bump pool reset once per
// sample instead of returned to the garbage collector, matching the
// render loop's "allocate lobes, use them for one sample, discard"
// lifecycle. Nothing allocated from an Arena may be retained past the
// next Reset; the integrator enforces this by construction (it never
// caches a BSDF across samples).
package arena

import "github.com/quantplane/photon/pkg/bsdf"

// slab is a growable bump pool for one concrete lobe type: Alloc hands
// out a pointer into used, growing the backing slice only the first time
// a given sample needs more lobes of that kind than any prior sample,
// and Reset rewinds the cursor to reuse the same backing storage.
type slab[T any] struct {
	items []T
	used  int
}

func (s *slab[T]) alloc() *T {
	if s.used >= len(s.items) {
		s.items = append(s.items, *new(T))
	}
	p := &s.items[s.used]
	s.used++
	*p = *new(T)
	return p
}

func (s *slab[T]) reset() { s.used = 0 }

// Arena is a thread-local bump pool. It is not safe for concurrent use
// from multiple goroutines: each render worker owns exactly one.
type Arena struct {
	bsdfs         slab[bsdf.BSDF]
	lambertians   slab[bsdf.LambertianReflection]
	orenNayars    slab[bsdf.OrenNayar]
	specReflects  slab[bsdf.SpecularReflection]
	specTransmits slab[bsdf.SpecularTransmission]
	fresnelSpecs  slab[bsdf.FresnelSpecular]
	microReflects slab[bsdf.MicrofacetReflection]
	microTransmit slab[bsdf.MicrofacetTransmission]
}

// New creates an empty Arena. capacity is a hint for the initial size of
// each lobe-kind slab (a BSDF rarely needs more than a couple of lobes of
// any one kind), not a hard limit: slabs grow on demand.
func New(capacity int) *Arena {
	a := &Arena{}
	a.bsdfs.items = make([]bsdf.BSDF, 0, capacity)
	a.lambertians.items = make([]bsdf.LambertianReflection, 0, capacity)
	a.orenNayars.items = make([]bsdf.OrenNayar, 0, capacity)
	a.specReflects.items = make([]bsdf.SpecularReflection, 0, capacity)
	a.specTransmits.items = make([]bsdf.SpecularTransmission, 0, capacity)
	a.fresnelSpecs.items = make([]bsdf.FresnelSpecular, 0, capacity)
	a.microReflects.items = make([]bsdf.MicrofacetReflection, 0, capacity)
	a.microTransmit.items = make([]bsdf.MicrofacetTransmission, 0, capacity)
	return a
}

// Reset releases every allocation made since the last Reset. Call once
// per sample, after the integrator has finished using whatever BSDF it
// borrowed.
func (a *Arena) Reset() {
	a.bsdfs.reset()
	a.lambertians.reset()
	a.orenNayars.reset()
	a.specReflects.reset()
	a.specTransmits.reset()
	a.fresnelSpecs.reset()
	a.microReflects.reset()
	a.microTransmit.reset()
}

func (a *Arena) AllocBSDF() *bsdf.BSDF                                       { return a.bsdfs.alloc() }
func (a *Arena) AllocLambertian() *bsdf.LambertianReflection                 { return a.lambertians.alloc() }
func (a *Arena) AllocOrenNayar() *bsdf.OrenNayar                             { return a.orenNayars.alloc() }
func (a *Arena) AllocSpecularReflection() *bsdf.SpecularReflection           { return a.specReflects.alloc() }
func (a *Arena) AllocSpecularTransmission() *bsdf.SpecularTransmission       { return a.specTransmits.alloc() }
func (a *Arena) AllocFresnelSpecular() *bsdf.FresnelSpecular                 { return a.fresnelSpecs.alloc() }
func (a *Arena) AllocMicrofacetReflection() *bsdf.MicrofacetReflection       { return a.microReflects.alloc() }
func (a *Arena) AllocMicrofacetTransmission() *bsdf.MicrofacetTransmission   { return a.microTransmit.alloc() }
