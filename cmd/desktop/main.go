package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

// Key codes the Hack keyboard reports for non-printable keys.
var specialKeys = map[ebiten.Key]uint16{
	ebiten.KeyEnter:     128,
	ebiten.KeyBackspace: 129,
	ebiten.KeyLeft:      130,
	ebiten.KeyUp:        131,
	ebiten.KeyRight:     132,
	ebiten.KeyDown:      133,
	ebiten.KeyHome:      134,
	ebiten.KeyEnd:       135,
	ebiten.KeyPageUp:    136,
	ebiten.KeyPageDown:  137,
	ebiten.KeyInsert:    138,
	ebiten.KeyDelete:    139,
	ebiten.KeyEscape:    140,
	ebiten.KeyF1:        141,
	ebiten.KeyF2:        142,
	ebiten.KeyF3:        143,
	ebiten.KeyF4:        144,
	ebiten.KeyF5:        145,
	ebiten.KeyF6:        146,
	ebiten.KeyF7:        147,
	ebiten.KeyF8:        148,
	ebiten.KeyF9:        149,
	ebiten.KeyF10:       150,
	ebiten.KeyF11:       151,
	ebiten.KeyF12:       152,
}

// keyboard turns ebiten's per-frame input into the code held in RAM[KBD].
// Printable characters only arrive on the frame they are typed, so the last
// one is remembered until every key is released.
type keyboard struct {
	held uint16
}

func (k *keyboard) update(pressed []ebiten.Key, chars []rune) uint16 {
	if len(pressed) == 0 && len(chars) == 0 {
		k.held = 0
		return 0
	}
	for _, key := range pressed {
		if code, ok := specialKeys[key]; ok {
			k.held = code
			return code
		}
	}
	if n := len(chars); n > 0 && chars[n-1] < 128 {
		k.held = uint16(chars[n-1])
	}
	return k.held
}

type Game struct {
	vm            *cpu.CPU
	stepsPerFrame int
	kbd           keyboard
	screenImg     *ebiten.Image // reused 512x256 canvas
	showStatus    bool
}

func (g *Game) Update() error {
	code := g.kbd.update(inpututil.AppendPressedKeys(nil), ebiten.AppendInputChars(nil))
	g.vm.SetKey(code)

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		g.showStatus = !g.showStatus
	}

	g.vm.RunSteps(g.stepsPerFrame)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(cpu.ScreenWidth, cpu.ScreenHeight)
	}
	g.screenImg.WritePixels(g.vm.GetFramebufferRGBA())
	screen.DrawImage(g.screenImg, nil)

	if g.showStatus || g.vm.Halted {
		ebitenutil.DebugPrint(screen, g.status())
	}
}

func (g *Game) status() string {
	state := "running"
	if g.vm.Halted {
		state = "halted"
	}
	return fmt.Sprintf("%s PC=%d A=%d D=%d steps=%d", state, g.vm.PC, g.vm.A, g.vm.D, g.vm.Steps)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cpu.ScreenWidth, cpu.ScreenHeight
}

func main() {
	speed := flag.Int("speed", 20000, "instructions executed per frame")
	scale := flag.Int("scale", 2, "initial window scale")
	loadState := flag.String("load-state", "", "resume a state file instead of loading a program")
	saveState := flag.String("save-state", "", "write the machine state here when the window closes")
	_ = flag.Set("logtostderr", "true")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] program.asm|program.hack\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	vm := cpu.NewCPU()
	title := "Hack"
	switch {
	case *loadState != "":
		if err := vm.RestoreFromFile(*loadState); err != nil {
			glog.Fatalf("Failed to restore %q: %v", *loadState, err)
		}
		title += " - " + *loadState
	case flag.NArg() == 1:
		fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
		if err != nil {
			glog.Fatalf("Bad path %q: %v", flag.Arg(0), err)
		}
		program, err := utils.LoadProgram(fullPath)
		if err != nil {
			glog.Fatalf("Failed to load program: %v", err)
		}
		if err := vm.Load(program); err != nil {
			glog.Fatalf("Failed to load program: %v", err)
		}
		glog.V(1).Infof("loaded %d words from %s", len(program), fullPath)
		title += " - " + fullPath
	default:
		flag.Usage()
		os.Exit(2)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cpu.ScreenWidth**scale, cpu.ScreenHeight**scale)
	ebiten.SetWindowTitle(title)

	game := &Game{vm: vm, stepsPerFrame: *speed}
	if err := ebiten.RunGame(game); err != nil {
		glog.Fatal(err)
	}

	if *saveState != "" {
		if err := vm.HibernateToFile(*saveState); err != nil {
			glog.Errorf("Failed to save state: %v", err)
		}
	}
}
