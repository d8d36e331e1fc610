package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

/*

image output section

*/

// frameJob carries a read-only copy of the scene for one rendered frame.
type frameJob struct {
	Frame      int
	Stars      []Star
	BlackHoles []BlackHole
	GasClouds  []GasCloud
	System     SolarSystem
	Zone       RenderZone
	Bound      nodebound
}

const (
	frameWidth  = 1920
	frameHeight = 1080

	// above this count the star field is drawn through the cluster tree
	lodStarThreshold = 200000
	// base cluster cell extent at zoom 1; divided by zoom so zooming in
	// refines the aggregation
	lodBaseCellExtent = 12.0
)

// frameToImages consumes frame jobs and writes one PNG per frame into
// outDir. The camera orbits the galactic origin slowly, one degree every
// four frames.
func frameToImages(outDir string, cam *Camera, wg *sync.WaitGroup, ch chan *frameJob) {
	defer wg.Done()

	campos := mgl64.Vec3{cam.PosX, cam.PosY, cam.PosZ}
	view := mgl64.LookAtV(campos, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(60), float64(frameWidth)/float64(frameHeight), 0.1, 100)
	vp := proj.Mul4(view)

	black := image.NewUniform(color.Black)

	for job := range ch {
		rot := mgl64.HomogRotate3DY(mgl64.DegToRad(float64(job.Frame)) / 4)
		zoom := mgl64.Scale3D(job.Zone.ZoomLevel, job.Zone.ZoomLevel, job.Zone.ZoomLevel)
		rvp := vp.Mul4(rot).Mul4(zoom)

		film := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
		draw.Draw(film, film.Bounds(), black, image.Point{}, draw.Src)

		plotStars(film, rvp, job)
		plotGasClouds(film, rvp, job.GasClouds)
		plotBlackHoles(film, rvp, job.BlackHoles)
		plotSolarSystem(film, rvp, &job.System, job.Zone)

		file, err := os.Create(filepath.Join(outDir, fmt.Sprintf("%010d.png", job.Frame)))
		if err != nil {
			panic(err)
		}
		png.Encode(file, film)
		file.Close()
	}
}

// plotStars draws the star field, collapsing clusters through the oct-tree
// when the population is large.
func plotStars(film draw.Image, rvp mgl64.Mat4, job *frameJob) {
	fade := job.Zone.StarBrightnessFade
	if len(job.Stars) <= lodStarThreshold {
		for i := range job.Stars {
			s := &job.Stars[i]
			b := s.Brightness * fade
			plotpoint3d(film, rgb(s.R*b, s.G*b, s.B*b), rvp, mgl64.Vec3{s.X, s.Y, s.Z})
		}
		return
	}

	maxExtent := lodBaseCellExtent
	if job.Zone.ZoomLevel > 1 {
		maxExtent /= job.Zone.ZoomLevel
	}
	root := buildClusterTree(job.Stars, job.Bound)
	root.aggregate(maxExtent, func(pos mgl64.Vec3, lum float64, col mgl64.Vec3, count int) {
		// mean brightness lifted a little for dense clusters
		b := lum / float64(count)
		b = math.Min(1, b*(1+math.Log2(float64(count))/16)) * fade
		plotpoint3d(film, rgb(col[0]*b, col[1]*b, col[2]*b), rvp, pos)
	})
}

// plotGasClouds draws clouds as dim filled discs sized by extent.
func plotGasClouds(film draw.Image, rvp mgl64.Mat4, clouds []GasCloud) {
	for i := range clouds {
		c := &clouds[i]
		x, y, ok := project(rvp, mgl64.Vec3{c.X, c.Y, c.Z}, film)
		if !ok {
			continue
		}
		r := int(c.Extent * 0.15)
		if r < 1 {
			r = 1
		} else if r > 6 {
			r = 6
		}
		o := c.Opacity
		plotcirclefilled(film, rgb(c.R*o, c.G*o, c.B*o), x, y, r)
	}
}

// pixel radii standing in for the (sub-pixel) physical horizon sizes
const (
	smbhRingRadius    = 6
	stellarRingRadius = 2
)

// plotBlackHoles draws each hole as a dark core with a photon-ring circle;
// holes with an accretion disk get a warm ring, bare ones a pale one.
func plotBlackHoles(film draw.Image, rvp mgl64.Mat4, holes []BlackHole) {
	for i := range holes {
		bh := &holes[i]
		x, y, ok := project(rvp, mgl64.Vec3{bh.X, bh.Y, bh.Z}, film)
		if !ok {
			continue
		}
		r := stellarRingRadius
		if bh.Kind == supermassive {
			r = smbhRingRadius
		}
		ring := rgb(0.6, 0.5, 0.8)
		if bh.HasAccretionDisk {
			ring = rgb(1.0, 0.85, 0.5)
		}
		plotcircle(film, ring, x, y, r)
		if r > 1 {
			plotcirclefilled(film, color.Black, x, y, r-1)
		}
	}
}

// plotSolarSystem draws the sun, the planets, and (zoomed in far enough)
// the orbit loops.
func plotSolarSystem(film draw.Image, rvp mgl64.Mat4, sys *SolarSystem, zone RenderZone) {
	if x, y, ok := project(rvp, mgl64.Vec3{sys.Sun.X, sys.Sun.Y, sys.Sun.Z}, film); ok {
		plotcirclefilled(film, rgb(1.0, 1.0, 0.3), x, y, 2)
	}

	for i := range sys.Planets {
		p := &sys.Planets[i]
		plotpoint3d(film, rgb(p.R, p.G, p.B), rvp, mgl64.Vec3{p.X, p.Y, p.Z})

		if !zone.RenderOrbits {
			continue
		}
		const segments = 64
		gray := rgb(0.3, 0.3, 0.3)
		prev := orbitPoint(sys, p, 0)
		for s := 1; s <= segments; s++ {
			next := orbitPoint(sys, p, float64(s)/segments*2*math.Pi)
			plotline3d(film, gray, rvp, prev, next)
			prev = next
		}
	}
}

func orbitPoint(sys *SolarSystem, p *Planet, angle float64) mgl64.Vec3 {
	return mgl64.Vec3{
		sys.Sun.X + p.OrbitRadius*math.Cos(angle),
		sys.Sun.Y,
		sys.Sun.Z + p.OrbitRadius*math.Sin(angle),
	}
}

// rgb clamps unit-range channels into an opaque color.
func rgb(r, g, b float64) color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return color.RGBA{clamp(r), clamp(g), clamp(b), 255}
}

// project transforms a world point to screen coordinates, reporting false
// when the point is behind the camera.
func project(vp mgl64.Mat4, p mgl64.Vec3, img draw.Image) (x, y int, ok bool) {
	t := vp.Mul4x1(p.Vec4(1))
	if t[3] < 0 {
		return 0, 0, false
	}
	t = t.Mul(1 / t[3]) // NDC space
	x, y = mgl64.GLToScreenCoords(t.X(), t.Y(), img.Bounds().Dx(), img.Bounds().Dy())
	return x, y, true
}

// plotpoint3d draws a single-pixel point at p.
func plotpoint3d(img draw.Image, c color.Color, vp mgl64.Mat4, p mgl64.Vec3) {
	if x, y, ok := project(vp, p, img); ok {
		img.Set(x, y, c)
	}
}

// plotline3d draws a line from p1 to p2, clipping endpoints behind the
// camera to the w=0.1 plane.
func plotline3d(img draw.Image, c color.Color, vp mgl64.Mat4, p1, p2 mgl64.Vec3) {
	t1 := vp.Mul4x1(p1.Vec4(1))
	t2 := vp.Mul4x1(p2.Vec4(1))

	switch {
	case t1[3] <= 0 && t2[3] <= 0:
		return
	case t1[3] < 0:
		lerpwto0(&t1, &t2)
	case t2[3] < 0:
		lerpwto0(&t2, &t1)
	}

	t1 = t1.Mul(1 / t1[3]) // NDC space
	t2 = t2.Mul(1 / t2[3])

	x1, y1 := mgl64.GLToScreenCoords(t1.X(), t1.Y(), img.Bounds().Dx(), img.Bounds().Dy())
	x2, y2 := mgl64.GLToScreenCoords(t2.X(), t2.Y(), img.Bounds().Dx(), img.Bounds().Dy())

	// drop degenerate near-plane clips that explode off-screen
	const limit = 1 << 14
	if abs(x1) > limit || abs(y1) > limit || abs(x2) > limit || abs(y2) > limit {
		return
	}
	plotline(img, c, x1, y1, x2, y2)
}

// lerpwto0 moves the low endpoint to the w=0.1 plane along the segment.
func lerpwto0(low, high *mgl64.Vec4) {
	t := (0.1 - low[3]) / (high[3] - low[3])
	low[0] += t * (high[0] - low[0])
	low[1] += t * (high[1] - low[1])
	low[2] += t * (high[2] - low[2])
	low[3] = 0.1
}

// plotline draws a simple line on img from (x0,y0) to (x1,y1).
//
// This is basically a copy of a version of Bresenham's line algorithm
// from https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm.
func plotline(img draw.Image, c color.Color, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// abs cuz no integer abs function in the Go standard library.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// plotcirclefilled draws a filled circle at (x0,y0) of radius r.
func plotcirclefilled(img draw.Image, c color.Color, x0, y0, r int) {
	rsqr := float64(r * r)
	for y := r; y >= 0; y-- {
		xright := int(math.Sqrt(rsqr - float64(y*y)))
		for x := -xright; x <= xright; x++ {
			img.Set(x0+x, y0+y, c)
			img.Set(x0+x, y0-y, c)
		}
	}
}

// plotcircle draws an unfilled circle at (x0,y0) of radius r.
func plotcircle(img draw.Image, c color.Color, x0, y0, r int) {
	x := r
	for y := 0; y <= x; y++ {
		img.Set(x0+x, y0+y, c)
		img.Set(x0+x, y0-y, c)
		img.Set(x0-x, y0+y, c)
		img.Set(x0-x, y0-y, c)

		img.Set(x0+y, y0+x, c)
		img.Set(x0+y, y0-x, c)
		img.Set(x0-y, y0+x, c)
		img.Set(x0-y, y0-x, c)
		d := 2*(x*x+y*y-r*r+2*y+1) + 1 - 2*x
		if d > 0 {
			x--
		}
	}
}
