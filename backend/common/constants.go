package common

import (
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
)

var Version = "v0.1.0"
var SystemName = "Paper Share"
var StartTime = time.Now().Unix()

// Role constants
const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
)

// Status constants
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogDir        = flag.String("log-dir", "", "specify the log directory")
)

// SessionSecret is regenerated on every start unless SESSION_SECRET is set,
// which means sessions do not survive a restart by default.
var SessionSecret = uuid.New().String()
var JWTSecret = uuid.New().String()

var SQLitePath = "data/papershare.db"
var UploadPath = "uploads"
var ServerAddress = "http://localhost:3000"

var GzipEnabled = false
var DebugEnabled = os.Getenv("GIN_MODE") == "debug"

func PrintHelp() {
	println(SystemName + " " + Version)
	println("Usage: papershare [--port <port>] [--log-dir <log directory>]")
	flag.PrintDefaults()
}
