package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dm-vev/candelight/server/block"
	"github.com/dm-vev/candelight/server/lang"
	"github.com/dm-vev/candelight/server/shape"
	"github.com/dm-vev/candelight/server/world"
	"github.com/dm-vev/candelight/server/world/entitydb"
	"github.com/pelletier/go-toml"
	"golang.org/x/text/language"
)

// Config contains options for running the candelabra blocks in a world.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Side is the side of the game the world is simulated for.
	Side world.Side
	// Shapes is the library shape assets are loaded from. If nil, blocks have
	// no geometry.
	Shapes *shape.Library
	// Metrics counts geometry cache and asset lookups. If nil, a new Metrics
	// is created.
	Metrics *shape.Metrics
	// Provider is the world.Provider used for storing and loading block
	// entities. If left as nil, nothing is stored.
	Provider world.Provider
	// Blocks holds the configuration of every candelabra block type. Fields
	// shared by all blocks, such as Shapes and Log, are filled in by New.
	Blocks []block.CandelabraConfig
	// Lang translates messages shown to users. If nil, the built-in
	// translations are used.
	Lang *lang.Translator
	// Language is the language messages are shown in on the console.
	Language language.Tag
}

// New creates a Mod using fields of conf. Block types with an empty or
// duplicate code are skipped.
func (conf Config) New() *Mod {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Provider == nil {
		conf.Provider = world.NopProvider{}
	}
	if conf.Metrics == nil {
		conf.Metrics = shape.NewMetrics()
	}
	if conf.Lang == nil {
		conf.Lang = lang.New()
	}
	if conf.Language == language.Und {
		conf.Language = language.English
	}
	if conf.Shapes != nil {
		conf.Shapes.WithMetrics(conf.Metrics)
	}
	if len(conf.Blocks) == 0 {
		conf.Log.Warn("config: no candelabra blocks configured")
	}

	m := &Mod{
		conf:   conf,
		world:  world.Config{Log: conf.Log, Side: conf.Side, Provider: conf.Provider}.New(),
		blocks: make(map[string]*block.Candelabra, len(conf.Blocks)),
	}
	for _, bc := range conf.Blocks {
		if bc.Code == "" {
			conf.Log.Error("register block: empty block code")
			continue
		}
		if _, ok := m.blocks[bc.Code]; ok {
			conf.Log.Error("register block: duplicate block code", "code", bc.Code)
			continue
		}
		bc.Shapes, bc.Metrics, bc.Log, bc.Lang = conf.Shapes, conf.Metrics, conf.Log, conf.Lang
		m.blocks[bc.Code] = bc.New()
		m.codes = append(m.codes, bc.Code)
	}
	slices.Sort(m.codes)
	return m
}

// UserConfig is the user configuration of the mod. It may be stored in a
// TOML file and converted to a Config.
type UserConfig struct {
	Assets struct {
		// Folder is the folder that shape assets are loaded from. Shapes are
		// looked up at shapes/block/<name>/... inside of it.
		Folder string
	}
	World struct {
		// Side is the side of the game that is simulated, "server" or
		// "client". Light is only computed on the server.
		Side string
		// SaveData controls whether block entities are saved and loaded. If
		// true, the LevelDB entity database is used.
		SaveData bool
		// Folder is the folder that the entity database resides in.
		Folder string
	}
	Candelabra struct {
		// CacheSize is the number of orientations every candelabra keeps
		// geometry of. Set to 0 to use the default.
		CacheSize int
		// Blocks holds the candelabra block types to register.
		Blocks []UserBlockConfig
	}
	Language struct {
		// Tag is the BCP 47 tag of the language messages are shown in, such
		// as "en" or "de".
		Tag string
	}
}

// UserBlockConfig is the user configuration of one candelabra block type.
type UserBlockConfig struct {
	// Code is the code of the block, such as "candelabra2".
	Code string
	// MaxCandles is the number of candles the block holds at most.
	MaxCandles int
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating a Mod. An error is returned if creating the data provider failed.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	conf := Config{
		Log:     log,
		Side:    world.SideServer,
		Metrics: shape.NewMetrics(),
		Lang:    lang.New(),
	}
	switch side := strings.ToLower(strings.TrimSpace(uc.World.Side)); side {
	case "", "server":
	case "client":
		conf.Side = world.SideClient
	default:
		log.Warn("Unknown world side, using server.", "value", side)
	}

	conf.Language = language.English
	if tag := strings.TrimSpace(uc.Language.Tag); tag != "" {
		parsed, err := language.Parse(tag)
		switch {
		case err != nil:
			log.Warn("Unknown language, using English.", "value", tag)
		case !translated(conf.Lang, parsed):
			log.Warn("No translations for language, using English.", "value", tag)
		default:
			conf.Language = parsed
		}
	}

	if uc.Assets.Folder != "" {
		conf.Shapes = shape.NewLibrary(os.DirFS(uc.Assets.Folder), log).WithMetrics(conf.Metrics)
	}
	for _, b := range uc.Candelabra.Blocks {
		conf.Blocks = append(conf.Blocks, block.CandelabraConfig{
			Code:       strings.TrimSpace(b.Code),
			MaxCandles: b.MaxCandles,
			CacheSize:  uc.Candelabra.CacheSize,
		})
	}
	if uc.World.SaveData {
		var err error
		conf.Provider, err = entitydb.Config{Log: log}.Open(uc.World.Folder)
		if err != nil {
			return conf, fmt.Errorf("create world provider: %w", err)
		}
	}
	return conf, nil
}

// translated reports if t holds messages in a language close enough to tag.
func translated(t *lang.Translator, tag language.Tag) bool {
	_, _, confidence := language.NewMatcher(t.Languages()).Match(tag)
	return confidence != language.No
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Assets.Folder = "assets"
	c.World.Side = "server"
	c.World.SaveData = true
	c.World.Folder = "world"
	c.Candelabra.CacheSize = shape.DefaultCacheSize
	c.Candelabra.Blocks = []UserBlockConfig{
		{Code: "candelabra1", MaxCandles: 1},
		{Code: "candelabra2", MaxCandles: 2},
		{Code: "candelabra3", MaxCandles: 3},
	}
	c.Language.Tag = "en"
	return c
}

// LoadUserConfig reads the user configuration stored in the TOML file at the
// path passed. Values missing from the file keep their defaults. If the file
// does not exist yet, it is created holding the default configuration.
func LoadUserConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("read config: %w", err)
		}
		return c, writeUserConfig(path, c)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func writeUserConfig(path string, c UserConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
