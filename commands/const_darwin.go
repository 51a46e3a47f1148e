package commands

const (
	_etc = "~/Library/Application Support/xsibas-workouts"

	DEFAULT_WORKDIR     = _etc
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"

	OPEN_URL = "open"
)
