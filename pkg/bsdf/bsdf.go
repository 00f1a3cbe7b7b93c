package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

const maxBxDFs = 8

// BSDF composes up to eight BxDF lobes sharing one shading frame. All
// evaluation happens in the local frame (s, t, n); TransformWorldToLocal
// and TransformLocalToWorld convert at the boundary.
//
// Light-leak prevention: Evaluate and Sample classify a lobe as
// reflective/transmissive using the *geometric* normal Ng (is wo on the
// same side of the true surface as wi), but compute every angle (cosines,
// the shading-frame basis) against the *shading* normal Ns. A bump- or
// bilinear-normal-mapped surface can otherwise let light leak through the
// back of a nominally opaque object.
type BSDF struct {
	Ng Normal
	Ns Normal
	s, t Vector

	Eta float64 // index of refraction, for specular transmission lobes

	bxdfs    [maxBxDFs]BxDF
	numBxDFs int
}

type Normal = core.Normal3
type Vector = core.Vector3

// New builds an empty BSDF for the given hit, ready to have lobes added.
// eta is the index of refraction on the far side of the interface (1 for
// fully opaque materials).
func New(ng, ns Normal, dpdu Vector, eta float64) *BSDF {
	s := dpdu.Subtract(ns.ToVector3().Multiply(ns.Dot(dpdu))).Normalize()
	t := ns.ToVector3().Cross(s)
	return &BSDF{Ng: ng, Ns: ns, s: s, t: t, Eta: eta}
}

// Add appends a lobe; panics if the BSDF already holds the maximum of 8,
// a structural programmer error (a material recipe that tries to add
// more lobes than the container supports).
func (b *BSDF) Add(bx BxDF) {
	if b.numBxDFs >= maxBxDFs {
		panic("bsdf: too many lobes added to BSDF (max 8)")
	}
	b.bxdfs[b.numBxDFs] = bx
	b.numBxDFs++
}

func (b *BSDF) NumComponents(mask Type) int {
	n := 0
	for i := 0; i < b.numBxDFs; i++ {
		if b.bxdfs[i].Type().Matches(mask) {
			n++
		}
	}
	return n
}

func (b *BSDF) WorldToLocal(v Vector) Vector {
	return core.NewVector3(v.Dot(b.s), v.Dot(b.t), v.DotNormal(b.Ns))
}

func (b *BSDF) LocalToWorld(v Vector) Vector {
	return core.NewVector3(
		b.s.X*v.X+b.t.X*v.Y+b.Ns.X*v.Z,
		b.s.Y*v.X+b.t.Y*v.Y+b.Ns.Y*v.Z,
		b.s.Z*v.X+b.t.Z*v.Y+b.Ns.Z*v.Z,
	)
}

// Evaluate returns the sum of every lobe matching mask, classifying each
// lobe's applicability (reflection vs. transmission) against the
// geometric normal to avoid light leaks, per the package doc.
func (b *BSDF) Evaluate(woW, wiW Vector, mask Type) Spectrum {
	wo := b.WorldToLocal(woW)
	wi := b.WorldToLocal(wiW)
	if wo.Z == 0 {
		return core.SpectrumBlack
	}

	reflect := woW.DotNormal(b.Ng)*wiW.DotNormal(b.Ng) > 0
	sum := core.SpectrumBlack
	for i := 0; i < b.numBxDFs; i++ {
		bx := b.bxdfs[i]
		if !bx.Type().Matches(mask) {
			continue
		}
		if (reflect && bx.Type().IsReflective()) || (!reflect && bx.Type().IsTransmissive()) {
			sum = sum.Add(bx.Evaluate(wo, wi))
		}
	}
	return sum
}

// ScatterSample is the world-space result of BSDF.Sample.
type ScatterSample struct {
	Value Spectrum
	Wi    Vector
	PDF   float64
	Type  Type
	Valid bool
}

// Sample picks a lobe matching mask uniformly by index, asks it to
// sample an incoming direction, then (for non-specular lobes) recomputes
// a multi-lobe pdf and value by summing over every matching lobe so the
// combined BSDF is sampled consistently regardless of which lobe was
// chosen.
func (b *BSDF) Sample(woW Vector, u1, u2, uComponent float64, mask Type) ScatterSample {
	matching := make([]int, 0, maxBxDFs)
	for i := 0; i < b.numBxDFs; i++ {
		if b.bxdfs[i].Type().Matches(mask) {
			matching = append(matching, i)
		}
	}
	n := len(matching)
	if n == 0 {
		return ScatterSample{}
	}

	k := int(uComponent * float64(n))
	if k >= n {
		k = n - 1
	}
	uRemapped := math.Min(uComponent*float64(n)-float64(k), 1-1e-12)

	chosen := b.bxdfs[matching[k]]
	wo := b.WorldToLocal(woW)
	if wo.Z == 0 {
		return ScatterSample{}
	}

	s, ok := chosen.SampleF(wo, uRemapped, u2)
	if !ok || s.PDF == 0 {
		return ScatterSample{}
	}

	wiW := b.LocalToWorld(s.Wi)
	pdf := s.PDF
	value := s.Value

	if !chosen.Type().IsSpecular() && n > 1 {
		total := 0.0
		for _, idx := range matching {
			total += b.bxdfs[idx].PDF(wo, s.Wi)
		}
		pdf = total / float64(n)
	}

	if !chosen.Type().IsSpecular() {
		reflect := woW.DotNormal(b.Ng)*wiW.DotNormal(b.Ng) > 0
		sum := core.SpectrumBlack
		for _, idx := range matching {
			bx := b.bxdfs[idx]
			if (reflect && bx.Type().IsReflective()) || (!reflect && bx.Type().IsTransmissive()) {
				sum = sum.Add(bx.Evaluate(wo, s.Wi))
			}
		}
		value = sum
	}

	return ScatterSample{Value: value, Wi: wiW, PDF: pdf, Type: chosen.Type(), Valid: true}
}

// PDF returns the BSDF's combined probability density for wi given wo,
// averaged over every lobe matching mask.
func (b *BSDF) PDF(woW, wiW Vector, mask Type) float64 {
	wo := b.WorldToLocal(woW)
	wi := b.WorldToLocal(wiW)
	if wo.Z == 0 {
		return 0
	}

	n := 0
	sum := 0.0
	for i := 0; i < b.numBxDFs; i++ {
		if !b.bxdfs[i].Type().Matches(mask) {
			continue
		}
		n++
		sum += b.bxdfs[i].PDF(wo, wi)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
