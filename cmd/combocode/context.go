package main

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/DriesNicolaes/ComboCode/internal/config"
	"github.com/DriesNicolaes/ComboCode/internal/logging"
	"github.com/DriesNicolaes/ComboCode/internal/modeldb"
	"github.com/DriesNicolaes/ComboCode/internal/refdata"
	"github.com/DriesNicolaes/ComboCode/internal/solver"
	"github.com/DriesNicolaes/ComboCode/internal/star"
)

type commandContext struct {
	configFlag *string
	inputFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, inputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		inputFlag:  inputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) inputPath() string {
	if c.inputFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.inputFlag)
}

// openStore assembles a parameter store from the model definition file
// and the configured collaborators. The cooling database is optional;
// passing a nil db leaves database-backed rules unavailable.
func (c *commandContext) openStore(db *modeldb.DB) (*star.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	initial := make(map[string]any)
	if path := c.inputPath(); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, err
		}
		initial, err = star.ReadInput(expanded)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := initial["STAR_NAME"]; !ok && cfg.Star.Name != "" {
		initial["STAR_NAME"] = cfg.Star.Name
	}
	if _, ok := initial["PATH_GAS_DATA"]; !ok {
		initial["PATH_GAS_DATA"] = cfg.Paths.GasDataDir
	}
	if _, ok := initial["PATH_MOLECULE_DATA"]; !ok {
		initial["PATH_MOLECULE_DATA"] = cfg.Paths.MoleculeDataDir
	}
	if _, ok := initial["N_QUAD"]; !ok {
		initial["N_QUAD"] = cfg.Fitting.NQuad
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return star.NewStore(star.Options{
		Initial: initial,
		RefData: refdata.Open(cfg.Paths.DataDir),
		Repo:    solver.NewRepository(cfg.Paths.GasHome, cfg.Paths.DustHome),
		DB:      db,
		Logger:  logging.NewComponentLogger(logger, "star"),
	})
}

// withDB opens the model database and hands it to fn, closing it after.
func (c *commandContext) withDB(fn func(*modeldb.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Paths.DBPath) == "" {
		return errors.New("model database path is not configured")
	}
	db, err := modeldb.Open(cfg.Paths.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
