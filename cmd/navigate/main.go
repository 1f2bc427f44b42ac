package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/gorgonia/pomcp"
	"github.com/gorgonia/pomcp/mcts"
	"github.com/gorgonia/pomcp/problem/planar"
	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	configFile = "navigate.yaml"
	statsFile  = "navigate.csv"
	numPaths   = 20
)

func loadConfig() pomcp.Config {
	if _, err := os.Stat(configFile); err != nil {
		log.Info().Msgf("%v not found, using the default configuration", configFile)
		return pomcp.DefaultConfig()
	}
	conf, err := pomcp.LoadConfig(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	return conf
}

func printPath(i int, path []mcts.State, goal []float32) {
	fmt.Printf("%2d ", i)
	for j, s := range path {
		p := s.([]float32)
		pt := fmt.Sprintf("(%.2f, %.2f)", p[0], p[1])
		switch {
		case j == 0:
			fmt.Print(aurora.Cyan(pt))
		case j == len(path)-1:
			fmt.Print(" → ", aurora.Green(pt))
		default:
			fmt.Print(" → ", pt)
		}
	}
	last := path[len(path)-1].([]float32)
	fmt.Printf("  %v\n", aurora.Yellow(fmt.Sprintf("[%.2f, %.2f] to go", goal[0]-last[0], goal[1]-last[1])))
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	base := loadConfig()
	start, goal := planar.Point(0, 0), planar.Point(5, 5)

	stats := pomcp.MakeStatistics()
	for _, method := range []pomcp.Method{pomcp.UCB1, pomcp.GPS} {
		conf := base
		conf.Method = method
		p, err := pomcp.New(planar.New(), conf)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to create planner")
		}
		p.SetLogger(log.Logger)

		if err := p.Plan(start, goal); err != nil {
			log.Fatal().Err(err).Msg("planning failed")
		}

		dotFile := fmt.Sprintf("navigate_%v.dot", method)
		if err := ioutil.WriteFile(dotFile, []byte(p.ToDot()), 0644); err != nil {
			log.Error().Err(err).Msg("unable to write tree")
		}

		fmt.Println(aurora.Bold(fmt.Sprintf("%v: %d nodes, tree written to %v", method, p.Nodes(), dotFile)))
		paths, err := p.Paths(numPaths)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to extract paths")
		}
		for i, path := range paths {
			printPath(i, path, goal)
		}
		key := conf.Name + "/" + string(method)
		fmt.Printf("mean final reward: %v\n\n", aurora.Magenta(p.MeanReward(key)))

		stats.Merge(p.Statistics)
	}

	if err := stats.Dump(statsFile); err != nil {
		log.Fatal().Err(err).Msg("unable to dump statistics")
	}
	log.Info().Msgf("statistics written to %v", statsFile)
}
