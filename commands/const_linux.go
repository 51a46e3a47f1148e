package commands

const (
	_etc = "~/.config/xsibas-workouts"

	DEFAULT_WORKDIR     = _etc
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"

	OPEN_URL = "xdg-open"
)
