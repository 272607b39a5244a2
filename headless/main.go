package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/youryharchenko/go-vacuum/config"
	"github.com/youryharchenko/go-vacuum/mas"
	"github.com/youryharchenko/go-vacuum/simulations/vacuum"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "stop the episode after this long")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(config.LogErrorPrefix+"%v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	agentCfg := vacuum.AgentConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		RandomSteps: cfg.RandomSteps,
		Log: func(s string) {
			log.Print(config.LogInfoPrefix + s)
		},
		Rand:      rand.New(rand.NewPCG(seed, 1)),
		DumpMap:   cfg.DumpMap,
		DenseDump: cfg.DenseMap,
	}
	envCfg := vacuum.EnvironmentConfig{
		Width:    cfg.Width,
		Height:   cfg.Height,
		DirtRate: cfg.DirtRate,
		WallRate: cfg.WallRate,
		Rand:     rand.New(rand.NewPCG(seed, 2)),
	}

	sys := mas.NewSystem()
	room, cleaner, err := vacuum.Spawn(sys, agentCfg, envCfg)
	if err != nil {
		log.Fatalf(config.LogErrorPrefix+"%v", err)
	}

	fmt.Println("Room:")
	for _, row := range room.Snapshot().Layout {
		fmt.Println(row)
	}

	go vacuum.Drive(sys, cleaner.ID(), cfg.Tick)

	// Чекаємо, поки пилосос зупиниться
	deadline := time.After(*timeout)
	poll := time.NewTicker(cfg.Tick)
	defer poll.Stop()

wait:
	for {
		select {
		case <-poll.C:
			if cleaner.Snapshot().Halted {
				break wait
			}
		case <-deadline:
			log.Printf(config.LogErrorPrefix + "timeout, stopping the episode")
			break wait
		}
	}

	if err := sys.Shutdown(); err != nil {
		log.Println(err)
	}

	rs := room.Snapshot()
	cs := cleaner.Snapshot()

	color := config.LogInfoColor
	if !rs.Clean {
		color = config.LogErrorColor
	}
	fmt.Printf("%sScore: %d  Steps: %d  Clean: %t  Pose: %s%s\n",
		color, rs.Score, rs.Steps, rs.Clean, rs.Pose, config.LogColorReset)
	fmt.Println("Belief:")
	fmt.Print(cs.Belief.Dump(cfg.DenseMap))
}
