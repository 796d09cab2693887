package config

import (
	"errors"
	"fmt"
	"time"
)

// Env variable names.
const (
	EnvServerURL    = "GESTURE_SERVER_URL"
	EnvPollInterval = "GESTURE_POLL_INTERVAL"
	EnvBoardWidth   = "GESTURE_BOARD_WIDTH"
	EnvBoardHeight  = "GESTURE_BOARD_HEIGHT"
	EnvPlayerSize   = "GESTURE_PLAYER_SIZE"
	EnvStore        = "GESTURE_STORE"
	EnvStorePath    = "GESTURE_STORE_PATH"
	EnvLogFile      = "GESTURE_LOG_FILE"
	EnvAddr         = "GESTURE_ADDR"
)

// Client holds the player program's settings. Flags override these after
// ClientFromEnv.
type Client struct {
	ServerURL    string
	PollInterval time.Duration
	BoardWidth   int
	BoardHeight  int
	PlayerSize   int
	Store        string
	StorePath    string
	LogFile      string
	Debug        bool
	Sound        bool
}

func DefaultClient() Client {
	return Client{
		ServerURL:    "http://localhost:5000",
		PollInterval: 100 * time.Millisecond,
		BoardWidth:   600,
		BoardHeight:  400,
		PlayerSize:   20,
		Store:        "file",
		StorePath:    ".gesturegame",
		LogFile:      "logs/cliente.log",
	}
}

// ClientFromEnv starts from DefaultClient and applies any env overrides.
func ClientFromEnv() (Client, error) {
	c := DefaultClient()
	var errs []error
	var err error

	c.ServerURL = GetString(EnvServerURL, c.ServerURL)
	c.Store = GetString(EnvStore, c.Store)
	c.StorePath = GetString(EnvStorePath, c.StorePath)
	c.LogFile = GetString(EnvLogFile, c.LogFile)

	if c.PollInterval, err = GetDuration(EnvPollInterval, c.PollInterval); err != nil {
		errs = append(errs, err)
	}
	if c.BoardWidth, err = GetInt(EnvBoardWidth, c.BoardWidth); err != nil {
		errs = append(errs, err)
	}
	if c.BoardHeight, err = GetInt(EnvBoardHeight, c.BoardHeight); err != nil {
		errs = append(errs, err)
	}
	if c.PlayerSize, err = GetInt(EnvPlayerSize, c.PlayerSize); err != nil {
		errs = append(errs, err)
	}
	return c, errors.Join(errs...)
}

// Validate rejects boards the game cannot be played on.
func (c Client) Validate() error {
	switch {
	case c.ServerURL == "":
		return fmt.Errorf("server url is empty")
	case c.PollInterval <= 0:
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	case c.PlayerSize <= 0:
		return fmt.Errorf("player size must be positive, got %d", c.PlayerSize)
	case c.BoardWidth < c.PlayerSize || c.BoardHeight < c.PlayerSize:
		return fmt.Errorf("board %dx%d smaller than player %d", c.BoardWidth, c.BoardHeight, c.PlayerSize)
	}
	return nil
}

// Server holds the gesture server's settings.
type Server struct {
	Addr string
}

func ServerFromEnv() Server {
	return Server{Addr: GetString(EnvAddr, ":5000")}
}
