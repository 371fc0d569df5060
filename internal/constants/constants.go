package constants

// Folder Names
const (
	StoreDirName = "store"
	LogDirName   = "logs"
)

// File Names
const (
	AppConfigFileName = "stackwin.toml"
	LogFileName       = "stackwin.log"
	EnvFileName       = ".env"
)

// Store defaults
const (
	DefaultNamespace = "stackwin.windows"
	DefaultCodec     = "json"
	StoreBackendFile = "file"
	StoreBackendMem  = "memory"
)

// Environment overrides, read after .env is loaded.
const (
	EnvConfigFile = "STACKWIN_CONFIG"
	EnvNamespace  = "STACKWIN_NAMESPACE"
	EnvStoreDir   = "STACKWIN_STORE_DIR"
)
