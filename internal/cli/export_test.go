package cli

// Export internal functions for testing.

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ValidConfigKeys exports validConfigKeys for testing.
var ValidConfigKeys = validConfigKeys

// ClampParallel exports clampParallel for testing.
var ClampParallel = clampParallel

// ParseQuery exports parseQuery for testing.
var ParseQuery = parseQuery

// MaskToken exports maskToken for testing.
var MaskToken = maskToken

// IsEmptyJSON exports isEmptyJSON for testing.
var IsEmptyJSON = isEmptyJSON

// ReportProblem exports reportProblem for testing.
var ReportProblem = reportProblem
