package param

// Version constants for the parameter schema and engine.
const (
	// SchemaVersion is the parameter/session schema version.
	// Load rejects session files carrying a different value.
	SchemaVersion = "1.0"

	// EngineVersion is the Forge engine version.
	EngineVersion = "0.1.0"
)
