package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the arena view.
const borderWidth = 24

// defaultPursuerCount is how many chasers the windowed demo opens with.
const defaultPursuerCount = 6

// pixelsPerUnit converts world units to screen pixels at zoom 1.
const pixelsPerUnit = 9.0

// ticksPerFrame is how many fixed 0.006s sim ticks fit in one 60Hz frame
// at 1x speed.
const ticksPerFrame = (1.0 / 60.0) / tickDT

// Game is the windowed Ebiten host: it schedules fixed-step sim ticks,
// decodes mouse/keyboard input into the simulation's teleport parameter,
// and renders the roster. All pursuit behaviour lives in Roster.Step; this
// layer only reads agent state between ticks.
type Game struct {
	width  int
	height int

	viewWidth  int // arena viewport width (inside border)
	viewHeight int

	roster *Roster
	simLog *SimLog
	seed   int64

	// Pending player input: world position the wanderer teleports to on the
	// next tick(s). Set while the left mouse button is held, nil otherwise.
	pendingTeleport *Vec3

	// Camera centre in world units (XZ plane) + zoom.
	camX      float64
	camY      float64
	camZoom   float64
	followCam bool // recentre on the wanderer every frame

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator

	showHUD  bool
	prevKeys map[ebiten.Key]bool

	reporter *CaptureReporter

	// Transient status line (e.g. "report copied"), shown for statusFrames.
	statusMsg    string
	statusFrames int
}

// New creates the windowed demo with a time-based seed.
func New() *Game {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates the windowed demo with a fixed seed, for reproducible
// sessions.
func NewSeeded(seed int64) *Game {
	viewW, viewH := 1280, 720
	g := &Game{
		width:      borderWidth + viewW + borderWidth,
		height:     borderWidth + viewH + borderWidth,
		viewWidth:  viewW,
		viewHeight: viewH,
		seed:       seed,
		camZoom:    1.0,
		followCam:  true,
		simSpeed:   1.0,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		simLog:     NewSimLog(false),
		reporter:   NewCaptureReporter(reportWindowTicks),
	}
	g.openRoster()
	return g
}

// openRoster (re)creates the population. Used at startup and on the R key.
func (g *Game) openRoster() {
	if g.roster != nil {
		g.roster.Close()
	}
	r, err := OpenRoster(defaultPursuerCount,
		WithRosterSeed(g.seed), WithRosterLog(g.simLog))
	if err != nil {
		// Count is a compile-time constant; this cannot fire.
		panic(err)
	}
	g.roster = r
}

func (g *Game) Update() error {
	g.handleInput()

	if g.statusFrames > 0 {
		g.statusFrames--
	}

	if g.followCam {
		w := g.roster.Wanderer().Position()
		g.camX = w.X
		g.camY = w.Z
	}

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run more sim ticks per frame; for < 1 accumulate
	// fractions. ~2.8 ticks per frame at 1x.
	g.tickAccum += g.simSpeed * ticksPerFrame
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if err := g.roster.Step(tickDT, g.pendingTeleport); err != nil {
			return err
		}
		if g.roster.Tick()%100 == 0 {
			g.reporter.Collect(g.roster)
		}
	}
	return nil
}

// handleInput processes keyboard and mouse state (edge-triggered keys).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// H: toggle HUD key legend.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// R: reset the roster (fresh ring spawn, restarts the seeded RNG stream).
	if pressed(ebiten.KeyR) {
		g.openRoster()
		g.setStatus("roster reset")
	}

	// C: copy a debug report to the clipboard.
	if pressed(ebiten.KeyC) {
		if err := copyDebugReport(g.roster, g.simLog, g.seed); err != nil {
			g.setStatus(fmt.Sprintf("clipboard error: %v", err))
		} else {
			g.setStatus("debug report copied")
		}
	}

	// F: toggle camera follow.
	if pressed(ebiten.KeyF) {
		g.followCam = !g.followCam
	}

	// Camera pan: WASD or arrow keys (disables follow).
	panSpeed := 1.0 / g.camZoom
	panned := false
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
		panned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
		panned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
		panned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
		panned = true
	}
	if panned {
		g.followCam = false
	}

	// Camera zoom: mouse wheel or =/- keys.
	const zoomMin, zoomMax = 0.25, 4.0
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if pressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if pressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	if g.camZoom < zoomMin {
		g.camZoom = zoomMin
	}
	if g.camZoom > zoomMax {
		g.camZoom = zoomMax
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 {
				if speeds[i+1] > g.simSpeed {
					g.simSpeed = speeds[i+1]
					break
				}
			}
		}
	}

	// Left mouse held: drag the wanderer. The cursor's world position is
	// fed into Step as the teleport parameter; the sim never sees raw
	// mouse state.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		wx, wz := g.screenToWorld(float64(mx), float64(my))
		g.pendingTeleport = &Vec3{X: wx, Z: wz}
	} else {
		g.pendingTeleport = nil
	}

	g.prevKeys = currentKeys
}

func (g *Game) setStatus(msg string) {
	g.statusMsg = msg
	g.statusFrames = 180
}

// worldToScreen maps XZ world coordinates to screen pixels under the
// current camera.
func (g *Game) worldToScreen(wx, wz float64) (float32, float32) {
	scale := pixelsPerUnit * g.camZoom
	sx := float64(borderWidth) + float64(g.viewWidth)/2 + (wx-g.camX)*scale
	sy := float64(borderWidth) + float64(g.viewHeight)/2 + (wz-g.camY)*scale
	return float32(sx), float32(sy)
}

func (g *Game) screenToWorld(sx, sy float64) (float64, float64) {
	scale := pixelsPerUnit * g.camZoom
	wx := (sx-float64(borderWidth)-float64(g.viewWidth)/2)/scale + g.camX
	wz := (sy-float64(borderWidth)-float64(g.viewHeight)/2)/scale + g.camY
	return wx, wz
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 16, A: 255})

	// Arena background.
	ox, oy := float32(borderWidth), float32(borderWidth)
	vw, vh := float32(g.viewWidth), float32(g.viewHeight)
	vector.FillRect(screen, ox, oy, vw, vh, color.RGBA{R: 22, G: 26, B: 30, A: 255}, false)

	g.drawGrid(screen)
	g.drawSpawnRing(screen)
	g.drawAgents(screen)

	// Arena border frame.
	borderCol := color.RGBA{R: 70, G: 80, B: 95, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, vw+2, vh+2, 2.0, borderCol, false)

	if g.showHUD {
		g.drawHUD(screen)
	}

	if g.statusFrames > 0 {
		ebitenutil.DebugPrintAt(screen, g.statusMsg, borderWidth+6, g.height-borderWidth+4)
	}
}

// drawGrid draws faint world-space grid lines every 10 units so motion is
// visible while the camera follows the wanderer.
func (g *Game) drawGrid(screen *ebiten.Image) {
	const spacing = 10.0
	gridCol := color.RGBA{R: 36, G: 42, B: 48, A: 255}

	scale := pixelsPerUnit * g.camZoom
	halfW := float64(g.viewWidth) / 2 / scale
	halfH := float64(g.viewHeight) / 2 / scale

	startX := math.Floor((g.camX-halfW)/spacing) * spacing
	for wx := startX; wx <= g.camX+halfW; wx += spacing {
		sx, _ := g.worldToScreen(wx, 0)
		if sx < borderWidth || sx > float32(borderWidth+g.viewWidth) {
			continue
		}
		vector.StrokeLine(screen, sx, borderWidth, sx, float32(borderWidth+g.viewHeight), 1, gridCol, false)
	}
	startZ := math.Floor((g.camY-halfH)/spacing) * spacing
	for wz := startZ; wz <= g.camY+halfH; wz += spacing {
		_, sy := g.worldToScreen(0, wz)
		if sy < borderWidth || sy > float32(borderWidth+g.viewHeight) {
			continue
		}
		vector.StrokeLine(screen, borderWidth, sy, float32(borderWidth+g.viewWidth), sy, 1, gridCol, false)
	}
}

// drawSpawnRing draws the [ringInner, ringOuter] respawn annulus around the
// wanderer.
func (g *Game) drawSpawnRing(screen *ebiten.Image) {
	w := g.roster.Wanderer().Position()
	cx, cy := g.worldToScreen(w.X, w.Z)
	scale := float32(pixelsPerUnit * g.camZoom)
	ringCol := color.RGBA{R: 60, G: 90, B: 70, A: 160}
	vector.StrokeCircle(screen, cx, cy, ringInner*scale, 1.0, ringCol, true)
	vector.StrokeCircle(screen, cx, cy, ringOuter*scale, 1.0, ringCol, true)
}

func (g *Game) drawAgents(screen *ebiten.Image) {
	scale := pixelsPerUnit * g.camZoom
	w := g.roster.Wanderer()

	for i := 0; i < g.roster.AgentCount(); i++ {
		a := g.roster.Agent(i)
		pos := a.Position()
		sx, sy := g.worldToScreen(pos.X, pos.Z)
		radius := float32(a.Radius() * scale)
		if radius < 2 {
			radius = 2
		}

		var c color.RGBA
		if a.Role() == RoleWanderer {
			c = color.RGBA{R: 240, G: 200, B: 40, A: 255} // gold quarry
		} else {
			c = color.RGBA{R: 210, G: 60, B: 50, A: 255}

			// Aim point: where the pursuit predictor thinks the quarry
			// will be.
			target := PursuitTarget(a, w, maxPredictionTime)
			tx, ty := g.worldToScreen(target.X, target.Z)
			vector.StrokeCircle(screen, tx, ty, 3, 1.0, color.RGBA{R: 210, G: 60, B: 50, A: 120}, true)
			vector.StrokeLine(screen, sx, sy, tx, ty, 1, color.RGBA{R: 120, G: 50, B: 45, A: 80}, true)
		}
		vector.DrawFilledCircle(screen, sx, sy, radius, c, true)

		// Heading line.
		fwd := a.Forward()
		hLen := a.Radius() * 3 * scale
		hx := sx + float32(fwd.X*hLen)
		hy := sy + float32(fwd.Z*hLen)
		vector.StrokeLine(screen, sx, sy, hx, hy, 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf(
		"T=%d  captures=%d  speed=%.1fx  zoom=%.2fx\n"+
			"mouse: drag wanderer | WASD/arrows: pan | wheel or =/-: zoom | F: follow\n"+
			"P: pause | ,/.: speed | R: reset | C: copy report | H: hide",
		g.roster.Tick(), g.roster.Captures(), g.simSpeed, g.camZoom)
	ebitenutil.DebugPrintAt(screen, hud, borderWidth+6, 4)

	if rep, ok := g.reporter.Latest(); ok {
		line := fmt.Sprintf("gap[min/avg/max]=%.1f/%.1f/%.1f",
			rep.MinDistance, rep.AvgDistance, rep.MaxDistance)
		ebitenutil.DebugPrintAt(screen, line, borderWidth+6, 52)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
