package config

// Constants defining default values for application configuration
const (
	DefaultDBPath  = "./reader.db"
	DefaultCSVPath = "./subscriptions.csv"

	DefaultServerPort = 8080
	DefaultServerHost = "" // Empty string means all interfaces

	DefaultInterval     = 30 // Minutes between refresh cycles
	DefaultFetchTimeout = 15 // Seconds per feed fetch

	DefaultLogLevel = "info"
)
