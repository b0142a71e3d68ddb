package config

const (
	defaultConfigPath     = "~/.config/timetable/config.toml"
	defaultDataDir        = "~/.local/share/timetable"
	defaultLogDir         = "~/.local/share/timetable/logs"
	defaultDriver         = "sqlite"
	defaultDatabaseFile   = "timetable.db"
	defaultBusyTimeoutMS  = 5000
	defaultHeaderRows     = 1
	defaultEpochYear      = 1983
	defaultUnknownTeacher = "Unknown"
	defaultPeriodStartCol = 2
	defaultAdminName      = "administrator"
	defaultLockFile       = "ingest.lock"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

var defaultNullTokens = []string{"nan", "NaN", "None", "#N/A"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Database: Database{
			Driver:        defaultDriver,
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Sheets: Sheets{
			HeaderRows: defaultHeaderRows,
			NullTokens: append([]string(nil), defaultNullTokens...),
		},
		Ingest: Ingest{
			EpochYear:      defaultEpochYear,
			UnknownTeacher: defaultUnknownTeacher,
			PeriodStartCol: defaultPeriodStartCol,
			AdminName:      defaultAdminName,
			LockFile:       defaultLockFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
