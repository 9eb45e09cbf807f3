// Package console implements a line based console that places and interacts
// with candelabras in the world of a server.Mod.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server"
	"github.com/dm-vev/candelight/server/block"
	"github.com/dm-vev/candelight/server/block/mount"
	"github.com/dm-vev/candelight/server/world"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Console reads commands from an io.Reader (defaulting to os.Stdin) and
// executes them on the world of a Mod. Command output is written to an
// io.Writer (defaulting to os.Stdout).
type Console struct {
	mod    *server.Mod
	log    *slog.Logger
	reader io.Reader
	out    io.Writer
	user   *consoleUser
}

// New returns a Console bound to the provided Mod.
func New(mod *server.Mod, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{
		mod:    mod,
		log:    log,
		reader: os.Stdin,
		out:    os.Stdout,
		user:   &consoleUser{id: uuid.New(), lang: mod.Language(), out: os.Stdout},
	}
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// WithOutput sets the writer that command output is written to.
func (c *Console) WithOutput(w io.Writer) *Console {
	if w != nil {
		c.out = w
		c.user.out = w
	}
	return c
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	c.user.out = c.out
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := c.Execute(strings.TrimPrefix(line, "/")); err != nil {
			c.log.Error("console: "+err.Error(), "line", line)
		}
	}
}

// Execute executes a single command line.
func (c *Console) Execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	switch name {
	case "tick":
		n := 1
		if len(args) > 0 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return fmt.Errorf("tick: invalid tick count %q", args[0])
			}
		}
		for i := 0; i < n; i++ {
			c.mod.World().Tick()
		}
		c.printf("tick %d\n", c.mod.World().CurrentTick())
		return nil
	case "metrics":
		s := c.mod.Metrics()
		c.printf("hits=%d misses=%d evictions=%d missing=%d\n", s.Hits, s.Misses, s.Evictions, s.MissingAssets)
		return nil
	case "refresh":
		dropped, err := c.mod.RefreshShapes()
		if err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		c.printf("dropped %d shapes\n", len(dropped))
		return nil
	case "stone":
		pos, _, err := parsePos(args)
		if err != nil {
			return fmt.Errorf("stone: %w", err)
		}
		c.mod.World().Exec(func(tx world.Tx) {
			tx.SetBlock(pos, world.Solid{Name: "stone"})
		})
		return nil
	case "place":
		return c.place(args)
	case "load":
		if len(args) < 1 {
			return fmt.Errorf("load: usage: load <code> <x> <y> <z>")
		}
		b, ok := c.mod.Block(args[0])
		if !ok {
			return fmt.Errorf("load: unknown block %q", args[0])
		}
		pos, _, err := parsePos(args[1:])
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		return c.mod.World().LoadBlock(pos, b)
	}

	pos, _, err := parsePos(args)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	var cmdErr error
	c.mod.World().Exec(func(tx world.Tx) {
		b, ok := block.AsLightEmittingAttachable(tx.Block(pos))
		if !ok {
			cmdErr = fmt.Errorf("%v: no candelabra at %v", name, pos)
			return
		}
		cmdErr = c.execute(name, pos, b, tx)
	})
	return cmdErr
}

func (c *Console) execute(name string, pos cube.Pos, b block.LightEmittingAttachable, tx world.Tx) error {
	cd, _ := b.(*block.Candelabra)
	switch name {
	case "add", "remove", "toggle":
		if cd == nil {
			return fmt.Errorf("%v: block at %v cannot be used", name, pos)
		}
		c.user.sneaking, c.user.held = name == "remove", ""
		if name == "add" {
			c.user.held = block.CandleItem
		}
		if cd.Activate(pos, tx, c.user) {
			c.printf("%v %v\n", name, pos)
		}
	case "light":
		if l, ok := b.LightHSV(pos, tx); ok {
			c.printf("light %d %d %d\n", l.Hue, l.Saturation, l.Value)
		} else {
			c.printf("light none\n")
		}
	case "boxes":
		if cd == nil {
			return fmt.Errorf("boxes: block at %v has no boxes", pos)
		}
		for _, box := range cd.SelectionBoxes(pos, tx) {
			c.printf("box %.3f %.3f\n", box.Min(), box.Max())
		}
	case "wicks":
		e, ok := candelabraEntity(tx, pos)
		if !ok {
			return fmt.Errorf("wicks: no block entity at %v", pos)
		}
		for _, w := range e.WickPoints() {
			c.printf("wick %.3f\n", w)
		}
	case "break":
		if cd != nil {
			cd.Break(tx, pos)
		} else {
			tx.BreakBlock(pos)
		}
	case "save":
		tx.MarkBlockEntityDirty(pos)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

// place handles "place <code> <x> <y> <z> <face> [yaw]".
func (c *Console) place(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("place: usage: place <code> <x> <y> <z> <face> [yaw]")
	}
	b, ok := c.mod.Block(args[0])
	if !ok {
		return fmt.Errorf("place: unknown block %q", args[0])
	}
	pos, rest, err := parsePos(args[1:])
	if err != nil {
		return fmt.Errorf("place: %w", err)
	}
	if len(rest) < 1 {
		return fmt.Errorf("place: missing face")
	}
	face, ok := mount.ParseFace(rest[0])
	if !ok {
		return fmt.Errorf("place: invalid face %q", rest[0])
	}
	c.user.yaw = 0
	if len(rest) > 1 {
		if c.user.yaw, err = strconv.ParseFloat(rest[1], 64); err != nil {
			return fmt.Errorf("place: invalid yaw %q", rest[1])
		}
	}
	c.mod.World().Exec(func(tx world.Tx) {
		err = b.Place(tx, pos, face, c.user)
	})
	if err != nil {
		return err
	}
	c.printf("placed %v at %v\n", b.Code(), pos)
	return nil
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

func candelabraEntity(tx world.Tx, pos cube.Pos) (*block.CandelabraEntity, bool) {
	be, ok := tx.BlockEntity(pos)
	if !ok {
		return nil, false
	}
	e, ok := be.(*block.CandelabraEntity)
	return e, ok
}

// parsePos parses the first three arguments as a block position and returns
// the remaining arguments.
func parsePos(args []string) (cube.Pos, []string, error) {
	if len(args) < 3 {
		return cube.Pos{}, nil, fmt.Errorf("expected <x> <y> <z>")
	}
	var pos cube.Pos
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return cube.Pos{}, nil, fmt.Errorf("invalid coordinate %q", args[i])
		}
		pos[i] = v
	}
	return pos, args[3:], nil
}

// consoleUser is the world.User that console commands are executed as. It is
// always in creative mode.
type consoleUser struct {
	id       uuid.UUID
	lang     language.Tag
	out      io.Writer
	yaw      float64
	sneaking bool
	held     string
}

func (u *consoleUser) UUID() uuid.UUID          { return u.id }
func (u *consoleUser) Rotation() cube.Rotation  { return cube.Rotation{u.yaw, 0} }
func (u *consoleUser) Sneaking() bool           { return u.sneaking }
func (u *consoleUser) GameMode() world.GameMode { return world.GameModeCreative }
func (u *consoleUser) HeldItem() string         { return u.held }
func (u *consoleUser) ConsumeHeldItem(int)      {}
func (u *consoleUser) GiveItem(string, int) bool {
	return true
}
func (u *consoleUser) Language() language.Tag { return u.lang }
func (u *consoleUser) SendError(code, msg string) {
	if u.out != nil {
		_, _ = fmt.Fprintf(u.out, "error %v: %v\n", code, msg)
	}
}
