// PBRT-style text scene parsing: tokenizes the pbrt scene description
// language's Directive "subtype" "type name" value... statement shape
// into an intermediate PBRTScene, then Build assembles that into the
// primitives/materials/lights pkg/scene.New consumes — the spec.md §6
// Scene::from(parsed) adapter, specialized to this text format. Grounded
// on the teacher's pkg/loaders/pbrt.go tokenizer/statement-router (kept
// nearly as-is: it is pure syntax, independent of any particular scene
// representation) with the geometry-building half rewritten against this
// renderer's shapes/materials/lights/primitive types in place of the
// teacher's core.Vec3-based one.
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/quantplane/photon/pkg/accel"
	"github.com/quantplane/photon/pkg/camera"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/lights"
	"github.com/quantplane/photon/pkg/materials"
	"github.com/quantplane/photon/pkg/primitive"
	"github.com/quantplane/photon/pkg/scene"
	"github.com/quantplane/photon/pkg/shapes"
)

// PBRTStatement represents a parsed PBRT statement
type PBRTStatement struct {
	Type          string               // Statement type (Camera, Material, Shape, etc.)
	Subtype       string               // Subtype (perspective, diffuse, sphere, etc.)
	Parameters    map[string]PBRTParam // Named parameters
	MaterialIndex int                  // For shapes: index of material to use (-1 = no material)
}

// PBRTParam represents a parameter with type and value(s)
type PBRTParam struct {
	Type   string   // Parameter type (float, rgb, point3, etc.)
	Values []string // Parameter values as strings
}

// PBRTScene contains all parsed PBRT scene data
type PBRTScene struct {
	// Pre-WorldBegin statements
	Camera     *PBRTStatement
	LookAtEye  *core.Point3
	LookAtAt   *core.Point3
	LookAtUp   *core.Vector3
	Film       *PBRTStatement
	Sampler    *PBRTStatement
	Integrator *PBRTStatement

	// World content (inside WorldBegin/WorldEnd)
	Materials    []PBRTStatement
	Shapes       []PBRTStatement
	LightSources []PBRTStatement
	Transforms   []PBRTStatement
	Attributes   []AttributeBlock
}

// AttributeBlock represents an AttributeBegin/AttributeEnd block
type AttributeBlock struct {
	Materials    []PBRTStatement
	Shapes       []PBRTStatement
	LightSources []PBRTStatement
	Transforms   []PBRTStatement
}

// GraphicsState represents the current graphics state (for AttributeBegin/AttributeEnd stack)
type GraphicsState struct {
	MaterialIndex   int            // Current material index
	AreaLightSource *PBRTStatement // Current area light source (nil if none)
}

// PBRTParser encapsulates the state and logic for parsing PBRT files
type PBRTParser struct {
	scene                *PBRTScene
	attributeStack       []*AttributeBlock
	stateStack           []GraphicsState
	currentMaterialIndex int
	inWorld              bool
	statementLines       []string
}

// ParsePBRT parses PBRT content from an io.Reader
func ParsePBRT(reader io.Reader) (*PBRTScene, error) {
	parser := NewPBRTParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := parser.finalize(); err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %v", err)
	}

	return parser.scene, nil
}

// LoadPBRT loads and parses a PBRT scene file
func LoadPBRT(filename string) (*PBRTScene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PBRT file: %v", err)
	}
	defer file.Close()

	return ParsePBRT(file)
}

// NewPBRTParser creates a new PBRT parser instance
func NewPBRTParser() *PBRTParser {
	return &PBRTParser{
		scene: &PBRTScene{
			Materials:    make([]PBRTStatement, 0),
			Shapes:       make([]PBRTStatement, 0),
			LightSources: make([]PBRTStatement, 0),
			Transforms:   make([]PBRTStatement, 0),
			Attributes:   make([]AttributeBlock, 0),
		},
		attributeStack:       make([]*AttributeBlock, 0),
		stateStack:           make([]GraphicsState, 0),
		currentMaterialIndex: -1,
		inWorld:              false,
		statementLines:       make([]string, 0),
	}
}

func (p *PBRTParser) getCurrentAttribute() *AttributeBlock {
	if len(p.attributeStack) > 0 {
		return p.attributeStack[len(p.attributeStack)-1]
	}
	return nil
}

func (p *PBRTParser) processAccumulatedStatement(context string) error {
	if len(p.statementLines) > 0 {
		fullStatement := strings.Join(p.statementLines, " ")
		stmt, err := parseStatement(fullStatement)
		if err != nil {
			return fmt.Errorf("error parsing statement %s '%s': %v", context, fullStatement, err)
		}
		if err := p.routeStatement(stmt); err != nil {
			return err
		}
		p.statementLines = nil
	}
	return nil
}

func (p *PBRTParser) processWorldBegin() error {
	if err := p.processAccumulatedStatement("before WorldBegin"); err != nil {
		return err
	}
	p.inWorld = true
	return nil
}

func (p *PBRTParser) processWorldEnd() error {
	if err := p.processAccumulatedStatement("before WorldEnd"); err != nil {
		return err
	}
	p.inWorld = false
	return nil
}

func (p *PBRTParser) processAttributeBegin() error {
	if err := p.processAccumulatedStatement("before AttributeBegin"); err != nil {
		return err
	}

	currentState := GraphicsState{MaterialIndex: p.currentMaterialIndex}
	if len(p.stateStack) > 0 {
		parentState := p.stateStack[len(p.stateStack)-1]
		currentState.AreaLightSource = parentState.AreaLightSource
	}
	p.stateStack = append(p.stateStack, currentState)

	newAttribute := &AttributeBlock{
		Materials:    make([]PBRTStatement, 0),
		Shapes:       make([]PBRTStatement, 0),
		LightSources: make([]PBRTStatement, 0),
		Transforms:   make([]PBRTStatement, 0),
	}
	p.attributeStack = append(p.attributeStack, newAttribute)
	return nil
}

func (p *PBRTParser) processAttributeEnd() error {
	if err := p.processAccumulatedStatement("before AttributeEnd"); err != nil {
		return err
	}

	if len(p.attributeStack) > 0 {
		completedAttribute := p.attributeStack[len(p.attributeStack)-1]
		p.scene.Attributes = append(p.scene.Attributes, *completedAttribute)
		p.attributeStack = p.attributeStack[:len(p.attributeStack)-1]
	}
	if len(p.stateStack) > 0 {
		restoredState := p.stateStack[len(p.stateStack)-1]
		p.currentMaterialIndex = restoredState.MaterialIndex
		p.stateStack = p.stateStack[:len(p.stateStack)-1]
	}
	return nil
}

func (p *PBRTParser) processLine(line string) error {
	line = strings.TrimSpace(line)

	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	switch line {
	case "WorldBegin":
		return p.processWorldBegin()
	case "WorldEnd":
		return p.processWorldEnd()
	case "AttributeBegin":
		return p.processAttributeBegin()
	case "AttributeEnd":
		return p.processAttributeEnd()
	}

	if isStatementStart(line) {
		if err := p.processAccumulatedStatement(""); err != nil {
			return err
		}
		p.statementLines = []string{line}
	} else {
		if len(p.statementLines) == 0 {
			return fmt.Errorf("unexpected continuation line: %s", line)
		}
		p.statementLines = append(p.statementLines, line)
	}

	return nil
}

func (p *PBRTParser) finalize() error {
	return p.processAccumulatedStatement("at end of file")
}

func (p *PBRTParser) routeStatement(stmt *PBRTStatement) error {
	if stmt.Type == "LookAt" {
		if err := parseLookAt(stmt, p.scene); err != nil {
			return fmt.Errorf("error parsing LookAt: %v", err)
		}
		return nil
	}

	currentAttribute := p.getCurrentAttribute()

	if currentAttribute != nil {
		switch stmt.Type {
		case "Material":
			currentAttribute.Materials = append(currentAttribute.Materials, *stmt)
		case "Shape":
			localMaterialIndex := len(currentAttribute.Materials) - 1
			if localMaterialIndex >= 0 {
				stmt.MaterialIndex = localMaterialIndex
			} else {
				stmt.MaterialIndex = p.currentMaterialIndex
			}
			p.stampAreaLight(stmt)
			currentAttribute.Shapes = append(currentAttribute.Shapes, *stmt)
		case "LightSource":
			currentAttribute.LightSources = append(currentAttribute.LightSources, *stmt)
		case "AreaLightSource":
			if len(p.stateStack) > 0 {
				p.stateStack[len(p.stateStack)-1].AreaLightSource = stmt
			}
			currentAttribute.LightSources = append(currentAttribute.LightSources, *stmt)
		case "Translate", "Rotate", "Scale", "Transform":
			currentAttribute.Transforms = append(currentAttribute.Transforms, *stmt)
		}
	} else {
		if !p.inWorld {
			switch stmt.Type {
			case "Camera":
				p.scene.Camera = stmt
			case "Film":
				p.scene.Film = stmt
			case "Sampler":
				p.scene.Sampler = stmt
			case "Integrator":
				p.scene.Integrator = stmt
			}
		} else {
			switch stmt.Type {
			case "Material":
				p.scene.Materials = append(p.scene.Materials, *stmt)
				p.currentMaterialIndex = len(p.scene.Materials) - 1
			case "Shape":
				stmt.MaterialIndex = p.currentMaterialIndex
				p.stampAreaLight(stmt)
				p.scene.Shapes = append(p.scene.Shapes, *stmt)
			case "LightSource":
				p.scene.LightSources = append(p.scene.LightSources, *stmt)
			case "AreaLightSource":
				if len(p.stateStack) > 0 {
					p.stateStack[len(p.stateStack)-1].AreaLightSource = stmt
				}
				p.scene.LightSources = append(p.scene.LightSources, *stmt)
			case "Translate", "Rotate", "Scale", "Transform":
				p.scene.Transforms = append(p.scene.Transforms, *stmt)
			}
		}
	}
	return nil
}

// stampAreaLight copies the enclosing AreaLightSource's emission onto a
// shape statement so Build can turn that one shape into a DiffuseArea
// light without a second pass over the graphics-state stack.
func (p *PBRTParser) stampAreaLight(stmt *PBRTStatement) {
	if len(p.stateStack) == 0 || p.stateStack[len(p.stateStack)-1].AreaLightSource == nil {
		return
	}
	areaLight := p.stateStack[len(p.stateStack)-1].AreaLightSource
	if stmt.Parameters == nil {
		stmt.Parameters = make(map[string]PBRTParam)
	}
	stmt.Parameters["_areaLight"] = PBRTParam{Type: "bool", Values: []string{"true"}}
	for paramName, param := range areaLight.Parameters {
		if paramName == "L" || paramName == "power" {
			stmt.Parameters[paramName] = param
		}
	}
}

func parseLookAt(stmt *PBRTStatement, scene *PBRTScene) error {
	if len(stmt.Parameters) != 1 || len(stmt.Parameters["values"].Values) != 9 {
		return fmt.Errorf("LookAt requires 9 values")
	}
	v := stmt.Parameters["values"].Values
	nums := make([]float64, 9)
	for i, s := range v {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid LookAt value %q: %v", s, err)
		}
		nums[i] = f
	}
	eye := core.NewPoint3(nums[0], nums[1], nums[2])
	at := core.NewPoint3(nums[3], nums[4], nums[5])
	up := core.NewVector3(nums[6], nums[7], nums[8])
	scene.LookAtEye = &eye
	scene.LookAtAt = &at
	scene.LookAtUp = &up
	return nil
}

// tokenizePBRT tokenizes a PBRT line respecting quoted strings and brackets
func tokenizePBRT(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	inBrackets := false

	for _, char := range line {
		switch char {
		case '"':
			if !inBrackets {
				current.WriteRune(char)
				if inQuotes {
					tokens = append(tokens, current.String())
					current.Reset()
					inQuotes = false
				} else {
					inQuotes = true
				}
			} else {
				current.WriteRune(char)
			}
		case '[':
			if !inQuotes {
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				current.WriteRune(char)
				inBrackets = true
			} else {
				current.WriteRune(char)
			}
		case ']':
			if !inQuotes && inBrackets {
				current.WriteRune(char)
				tokens = append(tokens, current.String())
				current.Reset()
				inBrackets = false
			} else {
				current.WriteRune(char)
			}
		case ' ', '\t':
			if inQuotes || inBrackets {
				current.WriteRune(char)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// parseStatement parses a single PBRT statement line
func parseStatement(line string) (*PBRTStatement, error) {
	if strings.HasPrefix(line, "LookAt") {
		parts := strings.Fields(line[6:])
		return &PBRTStatement{
			Type:       "LookAt",
			Parameters: map[string]PBRTParam{"values": {Type: "float", Values: parts}},
		}, nil
	}

	for _, transform := range []string{"Translate", "Rotate", "Scale", "Transform"} {
		if strings.HasPrefix(line, transform) {
			parts := strings.Fields(line[len(transform):])
			return &PBRTStatement{
				Type:       transform,
				Parameters: map[string]PBRTParam{"values": {Type: "float", Values: parts}},
			}, nil
		}
	}

	parts := tokenizePBRT(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid statement format")
	}

	stmt := &PBRTStatement{Type: parts[0], Parameters: make(map[string]PBRTParam)}

	if len(parts) > 1 && strings.HasPrefix(parts[1], "\"") && strings.HasSuffix(parts[1], "\"") {
		stmt.Subtype = strings.Trim(parts[1], "\"")
		parts = parts[2:]
	} else {
		parts = parts[1:]
	}

	i := 0
	for i < len(parts) {
		if !strings.HasPrefix(parts[i], "\"") {
			i++
			continue
		}

		paramDef := strings.Trim(parts[i], "\"")
		paramParts := strings.Fields(paramDef)
		if len(paramParts) != 2 {
			i++
			continue
		}

		paramType := paramParts[0]
		paramName := paramParts[1]
		i++

		var values []string
		if i < len(parts) {
			if strings.HasPrefix(parts[i], "[") && strings.HasSuffix(parts[i], "]") {
				arrayStr := strings.Trim(parts[i], "[] ")
				values = strings.Fields(arrayStr)
				i++
			} else {
				values = []string{parts[i]}
				i++
			}
		}

		stmt.Parameters[paramName] = PBRTParam{Type: paramType, Values: values}
	}

	return stmt, nil
}

func (stmt *PBRTStatement) GetFloatParam(name string, fallback float64) float64 {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return fallback
	}
	val, err := strconv.ParseFloat(param.Values[0], 64)
	if err != nil {
		return fallback
	}
	return val
}

func (stmt *PBRTStatement) GetRGBParam(name string, fallback core.Spectrum) core.Spectrum {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) < 3 {
		return fallback
	}
	r, err1 := strconv.ParseFloat(param.Values[0], 64)
	g, err2 := strconv.ParseFloat(param.Values[1], 64)
	b, err3 := strconv.ParseFloat(param.Values[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return core.NewSpectrum(r, g, b)
}

func (stmt *PBRTStatement) IsAreaLight() bool {
	p, exists := stmt.Parameters["_areaLight"]
	return exists && len(p.Values) > 0 && p.Values[0] == "true"
}

func (stmt *PBRTStatement) GetPoint3Param(name string, fallback core.Point3) core.Point3 {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) < 3 {
		return fallback
	}
	x, err1 := strconv.ParseFloat(param.Values[0], 64)
	y, err2 := strconv.ParseFloat(param.Values[1], 64)
	z, err3 := strconv.ParseFloat(param.Values[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return core.NewPoint3(x, y, z)
}

func (stmt *PBRTStatement) GetStringParam(name, fallback string) string {
	param, exists := stmt.Parameters[name]
	if !exists || len(param.Values) == 0 {
		return fallback
	}
	return param.Values[0]
}

func isStatementStart(line string) bool {
	statementTypes := []string{
		"Camera", "Film", "Sampler", "Integrator", "LookAt",
		"Material", "Shape", "LightSource", "AreaLightSource",
		"Translate", "Rotate", "Scale", "Transform",
		"ReverseOrientation", "Attribute",
	}

	for _, stmt := range statementTypes {
		if strings.HasPrefix(line, stmt+" ") || line == stmt {
			return true
		}
	}
	return false
}

// ---- Build: PBRTScene -> render-ready Scene + Camera -----------------

// BuildResult is the image_size-and-all record spec.md §6 names: the
// render-ready Scene plus the camera and resolution the parsed file
// requested.
type BuildResult struct {
	Scene  *scene.Scene
	Camera *camera.PerspectiveCamera
	Width  int
	Height int
}

// Build implements spec.md §6's Scene::from(parsed) adapter for the PBRT
// text format: walks every world-block shape/material/light statement
// (plus every AttributeBegin/AttributeEnd block, which carries its own
// local material/shape/light lists) and wires up primitives, the
// material table, and lights. baseDir anchors the relative "filename"
// parameter of PLY mesh shapes to the scene file's directory. Materials
// are built from constant parameters only; no image texture is loaded.
func Build(parsed *PBRTScene, baseDir string) (*BuildResult, error) {
	b := &builder{parsed: parsed, baseDir: baseDir}
	return b.build()
}

type builder struct {
	parsed  *PBRTScene
	baseDir string

	materials  []materials.Material
	prims      []primitive.Primitive
	lightList  []lights.Light
	areaLights []lights.Light
}

func (b *builder) build() (*BuildResult, error) {
	for _, m := range b.parsed.Materials {
		mat, err := b.buildMaterial(m)
		if err != nil {
			return nil, err
		}
		b.materials = append(b.materials, mat)
	}

	for _, s := range b.parsed.Shapes {
		if err := b.addShape(s, s.MaterialIndex); err != nil {
			return nil, err
		}
	}

	for _, l := range b.parsed.LightSources {
		light, err := b.buildLight(l)
		if err != nil {
			return nil, err
		}
		if light != nil {
			b.lightList = append(b.lightList, light)
		}
	}

	for _, attr := range b.parsed.Attributes {
		localBase := len(b.materials)
		for _, m := range attr.Materials {
			mat, err := b.buildMaterial(m)
			if err != nil {
				return nil, err
			}
			b.materials = append(b.materials, mat)
		}
		for _, s := range attr.Shapes {
			matIndex := s.MaterialIndex
			if matIndex >= 0 {
				matIndex += localBase
			}
			if err := b.addShape(s, matIndex); err != nil {
				return nil, err
			}
		}
		for _, l := range attr.LightSources {
			if l.Type != "LightSource" {
				continue
			}
			light, err := b.buildLight(l)
			if err != nil {
				return nil, err
			}
			if light != nil {
				b.lightList = append(b.lightList, light)
			}
		}
	}

	sc := scene.New(b.prims, b.materials, b.lightList, b.areaLights, accel.SplitSurfaceArea)

	width, height := 640, 480
	if b.parsed.Film != nil {
		width = int(b.parsed.Film.GetFloatParam("xresolution", float64(width)))
		height = int(b.parsed.Film.GetFloatParam("yresolution", float64(height)))
	}

	cam, err := b.buildCamera(width, height)
	if err != nil {
		return nil, err
	}

	return &BuildResult{Scene: sc, Camera: cam, Width: width, Height: height}, nil
}

func (b *builder) buildCamera(width, height int) (*camera.PerspectiveCamera, error) {
	eye := core.NewPoint3(0, 0, 0)
	at := core.NewPoint3(0, 0, 1)
	up := core.NewVector3(0, 1, 0)
	if b.parsed.LookAtEye != nil {
		eye = *b.parsed.LookAtEye
	}
	if b.parsed.LookAtAt != nil {
		at = *b.parsed.LookAtAt
	}
	if b.parsed.LookAtUp != nil {
		up = *b.parsed.LookAtUp
	}
	cameraToWorld := core.LookAt(eye, at, up).Inverse()

	fov := 90.0
	if b.parsed.Camera != nil {
		fov = b.parsed.Camera.GetFloatParam("fov", fov)
	}

	aspect := float64(width) / float64(height)
	window := camera.ScreenWindow{Min: core.NewVec2(-aspect, -1), Max: core.NewVec2(aspect, 1)}
	if aspect < 1 {
		window = camera.ScreenWindow{Min: core.NewVec2(-1, -1/aspect), Max: core.NewVec2(1, 1/aspect)}
	}

	return camera.NewPerspectiveCamera(cameraToWorld, window, fov, width, height, 0), nil
}

func (b *builder) buildMaterial(stmt PBRTStatement) (materials.Material, error) {
	switch stmt.Subtype {
	case "matte", "":
		kd := stmt.GetRGBParam("Kd", core.NewSpectrumGray(0.5))
		sigma := stmt.GetFloatParam("sigma", 0)
		return materials.NewMatte(materials.NewConstantTexture(kd), materials.NewConstantScalarTexture(sigma)), nil
	case "mirror":
		kr := stmt.GetRGBParam("Kr", core.SpectrumWhite)
		return materials.NewMirror(materials.NewConstantTexture(kr)), nil
	case "plastic":
		kd := stmt.GetRGBParam("Kd", core.NewSpectrumGray(0.25))
		ks := stmt.GetRGBParam("Ks", core.NewSpectrumGray(0.25))
		rough := stmt.GetFloatParam("roughness", 0.1)
		return materials.NewPlastic(materials.NewConstantTexture(kd), materials.NewConstantTexture(ks), materials.NewConstantScalarTexture(rough), true), nil
	case "glass":
		kr := stmt.GetRGBParam("Kr", core.SpectrumWhite)
		kt := stmt.GetRGBParam("Kt", core.SpectrumWhite)
		eta := stmt.GetFloatParam("eta", 1.5)
		uRough := stmt.GetFloatParam("uroughness", 0)
		vRough := stmt.GetFloatParam("vroughness", 0)
		return materials.NewGlass(materials.NewConstantTexture(kr), materials.NewConstantTexture(kt),
			materials.NewConstantScalarTexture(uRough), materials.NewConstantScalarTexture(vRough), eta, true), nil
	default:
		return nil, fmt.Errorf("loaders: unsupported material subtype %q", stmt.Subtype)
	}
}

func (b *builder) addShape(stmt PBRTStatement, materialIndex int) error {
	switch stmt.Subtype {
	case "sphere":
		radius := stmt.GetFloatParam("radius", 1)
		sp := shapes.NewSphere(core.IdentityTransform(), radius)
		b.addPrimitive(sp, materialIndex, stmt)
	case "disk":
		radius := stmt.GetFloatParam("radius", 1)
		inner := stmt.GetFloatParam("innerradius", 0)
		height := stmt.GetFloatParam("height", 0)
		d := shapes.NewDisk(core.IdentityTransform(), height, radius, inner)
		b.addPrimitive(d, materialIndex, stmt)
	case "plymesh", "trianglemesh":
		filename := stmt.GetStringParam("filename", "")
		if filename == "" {
			return fmt.Errorf("loaders: plymesh shape missing filename parameter")
		}
		path := filename
		if !strings.HasPrefix(path, "/") {
			path = b.baseDir + string(os.PathSeparator) + filename
		}
		mesh, err := LoadPLY(path, core.IdentityTransform())
		if err != nil {
			return err
		}
		for face := 0; face < len(mesh.Indices)/3; face++ {
			tri := shapes.NewTriangle(mesh, face)
			b.addPrimitive(tri, materialIndex, stmt)
		}
	default:
		return fmt.Errorf("loaders: unsupported shape subtype %q", stmt.Subtype)
	}
	return nil
}

// areaShape is the subset of primitive.Shape an area light's underlying
// geometry must also satisfy (Area + SampleArea), mirroring
// lights.AreaShape without importing pkg/lights from this file's
// unrelated shape-building code path.
type areaShape interface {
	Area() float64
	SampleArea(u core.Vec2) (core.Point3, core.Normal3)
}

func (b *builder) addPrimitive(shape primitive.Shape, materialIndex int, stmt PBRTStatement) {
	areaLightIndex := -1
	if stmt.IsAreaLight() {
		if as, ok := shape.(areaShape); ok {
			emission := stmt.GetRGBParam("L", core.SpectrumWhite)
			light := lights.NewDiffuseArea(as, emission)
			b.areaLights = append(b.areaLights, light)
			b.lightList = append(b.lightList, light)
			areaLightIndex = len(b.areaLights) - 1
		}
	}
	b.prims = append(b.prims, primitive.NewGeometricPrimitive(shape, materialIndex, areaLightIndex))
}

func (b *builder) buildLight(stmt PBRTStatement) (lights.Light, error) {
	switch stmt.Subtype {
	case "point":
		from := stmt.GetPoint3Param("from", core.NewPoint3(0, 0, 0))
		intensity := stmt.GetRGBParam("I", core.SpectrumWhite)
		return lights.NewPointLight(from, intensity), nil
	case "":
		// AreaLightSource statements carry no standalone light (they're
		// folded into the shape they precede via IsAreaLight/_areaLight).
		return nil, nil
	default:
		return nil, fmt.Errorf("loaders: unsupported light subtype %q", stmt.Subtype)
	}
}
