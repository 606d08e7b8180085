package config

const (
	defaultGasHome         = "~/GASTRoNOoM"
	defaultDustHome        = "~/MCMax"
	defaultDataDir         = "~/ComboCode/Data"
	defaultGasDataDir      = "~/ComboCode/LineData"
	defaultMoleculeDataDir = "~/ComboCode/MolecData"
	defaultLogDir          = "~/.local/share/combocode/logs"
	defaultDBPath          = "~/.local/share/combocode/models.db"
	defaultStarName        = "model"
	defaultNQuad           = 100
	defaultProfileNumber   = 2
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			GasHome:         defaultGasHome,
			DustHome:        defaultDustHome,
			DataDir:         defaultDataDir,
			GasDataDir:      defaultGasDataDir,
			MoleculeDataDir: defaultMoleculeDataDir,
			LogDir:          defaultLogDir,
			DBPath:          defaultDBPath,
		},
		Star: Star{
			Name: defaultStarName,
		},
		Fitting: Fitting{
			NQuad:         defaultNQuad,
			ProfileNumber: defaultProfileNumber,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
