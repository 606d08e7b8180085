package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStar()
	c.normalizeFitting()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.GasHome, err = expandPath(c.Paths.GasHome); err != nil {
		return fmt.Errorf("paths.gas_home: %w", err)
	}
	if c.Paths.DustHome, err = expandPath(c.Paths.DustHome); err != nil {
		return fmt.Errorf("paths.dust_home: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.GasDataDir, err = expandPath(c.Paths.GasDataDir); err != nil {
		return fmt.Errorf("paths.gas_data_dir: %w", err)
	}
	if c.Paths.MoleculeDataDir, err = expandPath(c.Paths.MoleculeDataDir); err != nil {
		return fmt.Errorf("paths.molecule_data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DBPath) == "" {
		c.Paths.DBPath = defaultDBPath
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return fmt.Errorf("paths.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeStar() {
	c.Star.Name = strings.TrimSpace(c.Star.Name)
	if c.Star.Name == "" {
		c.Star.Name = defaultStarName
	}
}

func (c *Config) normalizeFitting() {
	if c.Fitting.NQuad <= 0 {
		c.Fitting.NQuad = defaultNQuad
	}
	if c.Fitting.ProfileNumber <= 0 {
		c.Fitting.ProfileNumber = defaultProfileNumber
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
