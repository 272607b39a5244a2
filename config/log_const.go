package config

// Префікси логів
const (
	LogInfoPrefix  = "[VACUUM] [INFO] "
	LogErrorPrefix = "[VACUUM] [ERROR] "
)

// Кольори для терміналу
const (
	LogErrorColor = "\033[31m"
	LogInfoColor  = "\033[32m"
	LogColorReset = "\033[0m"
)
