package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LazyCat420/battle-bots/bot"
	"github.com/LazyCat420/battle-bots/combat"
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/number"
	"github.com/LazyCat420/battle-bots/match"
)

type matchResult struct {
	Result   string  `json:"result"`
	Winner   string  `json:"winner,omitempty"`
	Ticks    int     `json:"ticks"`
	WallTime float64 `json:"wallTimeMs"`
}

func main() {

	defApath := flag.String("a", "", "Bot definition yaml for the first fighter; required")
	defBpath := flag.String("b", "", "Bot definition yaml for the second fighter; required")
	configpath := flag.String("config", "", "Match config yaml; defaults apply when omitted")
	profile := flag.String("profile", "", "Physics profile override (2d or 3d)")
	seed := flag.Int64("seed", 0, "Deterministic seed; 0 picks the clock")
	duration := flag.Duration("duration", 0, "Match duration override, e.g. 90s")
	quiet := flag.Bool("quiet", false, "Suppress logs; frames still stream to stdout")

	flag.Parse()

	utils.Assert(*defApath != "", "-a must be set")
	utils.Assert(*defBpath != "", "-b must be set")

	// Frames own stdout; logs go to stderr.
	if *quiet {
		utils.SetDebugOutput(io.Discard)
		log.SetOutput(io.Discard)
	} else {
		utils.SetDebugOutput(os.Stderr)
	}

	config := match.DefaultConfig()
	if *configpath != "" {
		var err error
		config, err = match.LoadConfigFile(*configpath)
		utils.Check(err, "Could not load match config "+*configpath)
	}

	if *profile != "" {
		config.Profile = *profile
	}
	if *duration > 0 {
		config.DurationSec = duration.Seconds()
	}
	if *seed != 0 {
		config.Seed = *seed
	} else if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	table := combat.DefaultArchetypes()
	if config.ArchetypesFile != "" {
		var err error
		table, err = combat.LoadArchetypes(config.ArchetypesFile)
		utils.Check(err, "Could not load weapon archetypes "+config.ArchetypesFile)
	}

	defA := loadDefinition(*defApath, table)
	defB := loadDefinition(*defBpath, table)

	m := match.NewMatch(config, defA, defB)
	observer := m.SubscribeStateObservation()

	encoder := json.NewEncoder(os.Stdout)
	terminalframe := make(chan match.Frame, 1)

	// The consumer owns the encoder until the terminal frame is out; the
	// result line below is only written after that hand-off.
	go func() {
		for frame := range observer {
			if err := encoder.Encode(frame); err != nil {
				utils.Debug("match-runner", "ERROR: could not encode frame: "+err.Error())
			}
			if frame.Finished {
				terminalframe <- frame
				return
			}
		}
	}()

	// handling signals
	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		utils.Debug("sighandler", "RECEIVED SHUTDOWN SIGNAL; closing.")
		m.Stop()
	}()

	startedat := time.Now()

	block, err := m.Start()
	utils.Check(err, "Could not start the match")

	<-block
	m.TearDown()

	select {
	case frame := <-terminalframe:
		result := matchResult{
			Result:   "winner",
			Ticks:    frame.Tick,
			WallTime: number.DurationMs(time.Since(startedat)),
		}
		if frame.Draw {
			result.Result = "draw"
		} else {
			for _, fighter := range frame.Bots {
				if fighter.Id == frame.Winner {
					result.Winner = fighter.Name
				}
			}
		}
		encoder.Encode(result)

	case <-time.After(2 * time.Second):
		utils.Debug("match-runner", "Match stopped before the verdict")
		os.Exit(1)
	}
}

func loadDefinition(path string, table *combat.ArchetypeTable) bot.Definition {
	def, err := bot.LoadFile(path)
	utils.Check(err, "Could not load bot definition "+path)

	def = bot.Clamp(def, table)
	utils.Check(bot.Validate(def, table), "Bot definition rejected: "+path)

	return def
}
