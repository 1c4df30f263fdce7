package vision

import (
	"image"
	"math"
	"math/rand"
)

// HoughParams tunes the probabilistic Hough transform.
type HoughParams struct {
	Rho           float64 // accumulator distance resolution in pixels
	Theta         float64 // accumulator angle resolution in radians
	Threshold     int     // accumulator votes required to accept a line
	MinLineLength float64 // discard segments shorter than this
	MaxLineGap    float64 // bridge on-line gaps up to this many pixels
}

// DefaultHoughParams returns the tuning the follower ships with.
func DefaultHoughParams() HoughParams {
	return HoughParams{
		Rho:           1,
		Theta:         math.Pi / 180,
		Threshold:     50,
		MinLineLength: 10,
		MaxLineGap:    5,
	}
}

// normalized floors out-of-range values instead of failing, the same way the
// interactive tuner clamps its inputs. Rho has a hard floor of 0.01.
func (p HoughParams) normalized() HoughParams {
	if p.Rho < 0.01 {
		p.Rho = 0.01
	}
	if p.Theta <= 0 {
		p.Theta = math.Pi / 180
	}
	if p.Threshold < 1 {
		p.Threshold = 1
	}
	if p.MinLineLength < 0 {
		p.MinLineLength = 0
	}
	if p.MaxLineGap < 0 {
		p.MaxLineGap = 0
	}
	return p
}

// houghGrid is the accumulator plus the trig tables shared by voting and
// unvoting.
type houghGrid struct {
	accum    []int32
	sinT     []float64
	cosT     []float64
	numAngle int
	numRho   int
	shift    int
	rho      float64
}

func newHoughGrid(w, h int, p HoughParams) *houghGrid {
	numAngle := int(math.Round(math.Pi / p.Theta))
	if numAngle < 1 {
		numAngle = 1
	}
	numRho := int(math.Round(float64(2*(w+h)+1) / p.Rho))
	g := &houghGrid{
		accum:    make([]int32, numAngle*numRho),
		sinT:     make([]float64, numAngle),
		cosT:     make([]float64, numAngle),
		numAngle: numAngle,
		numRho:   numRho,
		shift:    (numRho - 1) / 2,
		rho:      p.Rho,
	}
	for n := 0; n < numAngle; n++ {
		g.sinT[n] = math.Sin(float64(n) * p.Theta)
		g.cosT[n] = math.Cos(float64(n) * p.Theta)
	}
	return g
}

func (g *houghGrid) cell(x, y, n int) int {
	r := int(math.Round((float64(x)*g.cosT[n] + float64(y)*g.sinT[n]) / g.rho))
	return n*g.numRho + r + g.shift
}

// vote adds one point across every angle and returns the strongest angle
// and its vote count.
func (g *houghGrid) vote(x, y int) (bestAngle int, bestVotes int32) {
	bestVotes = -1
	for n := 0; n < g.numAngle; n++ {
		i := g.cell(x, y, n)
		g.accum[i]++
		if g.accum[i] > bestVotes {
			bestVotes = g.accum[i]
			bestAngle = n
		}
	}
	return bestAngle, bestVotes
}

func (g *houghGrid) unvote(x, y int) {
	for n := 0; n < g.numAngle; n++ {
		g.accum[g.cell(x, y, n)]--
	}
}

// HoughSegments extracts line segments from a binary edge image with a
// progressive probabilistic Hough transform: edge pixels vote in a
// (rho, theta) accumulator in random order; once a cell reaches p.Threshold
// votes, the corresponding line is traced through the edge image, emitted if
// long enough, and its pixels are removed from both the mask and the
// accumulator so they cannot support another line. Point selection order is
// driven by seed, so output is reproducible for a fixed (image, params,
// seed) triple.
func HoughSegments(edges *image.Gray, p HoughParams, seed int64) []Segment {
	p = p.normalized()
	bounds := edges.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	// Collect edge pixels. mask tracks which are still available.
	mask := make([]bool, w*h)
	var points []image.Point
	for y := 0; y < h; y++ {
		row := edges.Pix[y*edges.Stride : y*edges.Stride+w]
		for x, v := range row {
			if v != 0 {
				mask[y*w+x] = true
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	grid := newHoughGrid(w, h, p)
	rng := rand.New(rand.NewSource(seed))
	var segments []Segment

	for count := len(points); count > 0; count-- {
		idx := rng.Intn(count)
		pt := points[idx]
		points[idx] = points[count-1]
		// Skip points already consumed by an earlier segment.
		if !mask[pt.Y*w+pt.X] {
			continue
		}

		angle, votes := grid.vote(pt.X, pt.Y)
		if votes < int32(p.Threshold) {
			continue
		}

		// The line direction is perpendicular to the (cos, sin) normal.
		ux, uy := lineStep(-grid.sinT[angle], grid.cosT[angle])
		var ends [2]image.Point
		for k, dir := range [2]float64{1, -1} {
			ends[k] = traceEnd(mask, w, h, pt, dir*ux, dir*uy, p.MaxLineGap)
		}
		seg := Segment{X1: ends[0].X, Y1: ends[0].Y, X2: ends[1].X, Y2: ends[1].Y}
		good := seg.Length() >= p.MinLineLength

		// Consume the traced pixels; a good line also withdraws their votes
		// so the accumulator reflects only what remains.
		for k, dir := range [2]float64{1, -1} {
			consumeLine(mask, w, h, pt, ends[k], dir*ux, dir*uy, func(x, y int) {
				if good {
					grid.unvote(x, y)
				}
			})
		}

		if good {
			seg.X1 += bounds.Min.X
			seg.Y1 += bounds.Min.Y
			seg.X2 += bounds.Min.X
			seg.Y2 += bounds.Min.Y
			segments = append(segments, seg)
		}
	}
	return segments
}

// lineStep turns a direction vector into DDA steps where the dominant axis
// moves exactly one pixel per step.
func lineStep(dirX, dirY float64) (float64, float64) {
	ax, ay := math.Abs(dirX), math.Abs(dirY)
	if ax > ay {
		return dirX / ax, dirY / ax
	}
	return dirX / ay, dirY / ay
}

// traceEnd follows the line from start, tolerating runs of up to maxGap
// consecutive off-mask pixels, and returns the farthest on-mask point.
func traceEnd(mask []bool, w, h int, start image.Point, dx, dy, maxGap float64) image.Point {
	fx, fy := float64(start.X), float64(start.Y)
	end := start
	gap := 0
	for {
		x, y := int(math.Round(fx)), int(math.Round(fy))
		if x < 0 || y < 0 || x >= w || y >= h {
			break
		}
		if mask[y*w+x] {
			gap = 0
			end = image.Point{X: x, Y: y}
		} else {
			gap++
			if float64(gap) > maxGap {
				break
			}
		}
		fx += dx
		fy += dy
	}
	return end
}

// consumeLine walks from start to end, clearing every still-set mask pixel
// on the way and reporting it to cleared. Unlike traceEnd it never stops
// early: the endpoint came from a previous trace and must be reached even
// across pixels another walk already cleared.
func consumeLine(mask []bool, w, h int, start, end image.Point, dx, dy float64, cleared func(x, y int)) {
	fx, fy := float64(start.X), float64(start.Y)
	for {
		x, y := int(math.Round(fx)), int(math.Round(fy))
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		if mask[y*w+x] {
			cleared(x, y)
			mask[y*w+x] = false
		}
		if x == end.X && y == end.Y {
			return
		}
		fx += dx
		fy += dy
	}
}
