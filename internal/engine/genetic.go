package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// GeneticConfig holds parameters for the genetic algorithm optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// gene is one packing decision: which item goes next and which of its
// allowed orientations is tried first.
type gene struct {
	itemIndex int
	orient    int
}

// chromosome is a candidate solution: an ordering of items with
// orientation preferences.
type chromosome struct {
	genes   []gene
	fitness float64
}

type geneticOptimizer struct {
	container model.Dimensions
	settings  model.PackSettings
	config    GeneticConfig
	items     []model.Item
	choices   []int // number of allowed orientations per item
	rng       *rand.Rand
}

func newGeneticOptimizer(container model.Dimensions, settings model.PackSettings, config GeneticConfig, items []model.Item) *geneticOptimizer {
	mode := settings.Normalized().AllowRotation
	choices := make([]int, len(items))
	for i, it := range items {
		choices[i] = len(model.Orientations(mode, it.Dimensions))
	}
	return &geneticOptimizer{
		container: container,
		settings:  settings,
		config:    config,
		items:     items,
		choices:   choices,
		rng:       rand.New(rand.NewSource(config.Seed)),
	}
}

// optimize runs the genetic algorithm and returns the best chromosome.
func (g *geneticOptimizer) optimize() chromosome {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sortByFitness(population)
	return population[0]
}

func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation creates the initial population: input order, largest
// volume first, then random permutations.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{itemIndex: perm[j], orient: g.rng.Intn(g.choices[perm[j]])}
		}
		population[i] = chromosome{genes: genes}
	}

	if len(population) > 0 {
		population[0] = g.orderedChromosome(identityOrder(n))
	}
	if len(population) > 1 {
		population[1] = g.orderedChromosome(volumeDescOrder(g.items))
	}
	return population
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func (g *geneticOptimizer) orderedChromosome(order []int) chromosome {
	genes := make([]gene, len(order))
	for i, idx := range order {
		genes[i] = gene{itemIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate decodes a chromosome and scores its volume utilization,
// penalizing rejected items and extra containers.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	result, err := g.decode(c)
	if err != nil || len(result.Containers) == 0 {
		return 0
	}

	efficiency := result.GlobalEfficiency()
	rejectedPenalty := float64(len(result.Rejected())) * 0.1
	containerPenalty := float64(len(result.Containers)-1) * 0.05

	fitness := efficiency - rejectedPenalty - containerPenalty
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode packs the items in chromosome order into a fresh session.
func (g *geneticOptimizer) decode(c chromosome, opts ...Option) (model.PackResult, error) {
	order := make([]int, len(c.genes))
	prefs := make([]int, len(g.items))
	for i, gn := range c.genes {
		order[i] = gn.itemIndex
		prefs[gn.itemIndex] = gn.orient
	}
	return packOrdered(g.container, g.settings, g.items, order, prefs, opts...)
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].itemIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.itemIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n == 0 {
		return
	}

	// Swap mutation
	if n > 1 && g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Orientation mutation: pick another preferred orientation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		if k := g.choices[c.genes[i].itemIndex]; k > 1 {
			c.genes[i].orient = g.rng.Intn(k)
		}
	}

	// Inversion mutation (less frequent)
	if n > 1 && g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// OptimizeGenetic searches over item order and orientation preference with
// a seeded genetic algorithm. items must already be expanded by quantity.
// The run is deterministic for a given input.
func OptimizeGenetic(container model.Dimensions, settings model.PackSettings, items []model.Item, opts ...Option) (model.PackResult, error) {
	if err := settings.Validate(container); err != nil {
		return model.PackResult{}, err
	}
	if len(items) == 0 {
		s, err := NewSession(container, settings, opts...)
		if err != nil {
			return model.PackResult{}, err
		}
		return s.Result(), nil
	}

	config := DefaultGeneticConfig()

	// Scale the search with the problem size; every evaluation is a full
	// packing, so large inputs get a shorter run.
	switch n := len(items); {
	case n > 150:
		config.Generations = 40
		config.PopulationSize = 30
	case n > 50:
		config.Generations = 120
		config.PopulationSize = 60
	case n > 20:
		config.Generations = 150
	}

	ga := newGeneticOptimizer(container, settings, config, items)
	best := ga.optimize()
	return ga.decode(best, opts...)
}
