package emulator

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

// GeneratorConfig задаёт синтетическую популяцию.
type GeneratorConfig struct {
	MinAge int
	MaxAge int

	// Доля записей (0..1), выводимых за границу валидации
	InvalidRate float64
	Seed        int64
}

// DefaultGeneratorConfig повторяет возрастной диапазон обучающих данных.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinAge:      30,
		MaxAge:      65,
		InvalidRate: 0,
		Seed:        time.Now().UnixNano(),
	}
}

// GeneratorStats - счётчики сгенерированного.
type GeneratorStats struct {
	Generated int
	Invalid   int
}

// Generator выдаёт правдоподобные записи параметров здоровья.
type Generator struct {
	mu     sync.Mutex
	rand   *rand.Rand
	config GeneratorConfig
	stats  GeneratorStats
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	if !risk.AgeBounds.Contains(float64(cfg.MinAge)) ||
		!risk.AgeBounds.Contains(float64(cfg.MaxAge)) ||
		cfg.MinAge > cfg.MaxAge {
		cfg.MinAge, cfg.MaxAge = 30, 65
	}
	return &Generator{
		rand:   rand.New(rand.NewSource(cfg.Seed)),
		config: cfg,
	}
}

// Next возвращает следующую запись.
func (g *Generator) Next() risk.HealthParameters {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := risk.HealthParameters{
		Age:    g.config.MinAge + g.rand.Intn(g.config.MaxAge-g.config.MinAge+1),
		Gender: risk.GenderFemale,
	}
	if g.rand.Float64() < 0.35 {
		p.Gender = risk.GenderMale
	}

	if p.Gender == risk.GenderMale {
		p.Height = g.normal(170, 7, risk.HeightBounds)
		p.Weight = g.normal(78, 13, risk.WeightBounds)
	} else {
		p.Height = g.normal(162, 7, risk.HeightBounds)
		p.Weight = g.normal(72, 14, risk.WeightBounds)
	}
	p.Height = math.Round(p.Height)
	p.Weight = math.Round(p.Weight*10) / 10

	// Давление растёт с возрастом
	systolic := g.normal(110+0.4*float64(p.Age), 15, risk.SystolicBPBounds)
	diastolic := g.normal(70+0.25*float64(p.Age), 9, risk.DiastolicBPBounds)
	p.SystolicBP = int(math.Round(systolic))
	p.DiastolicBP = int(math.Round(diastolic))
	if p.DiastolicBP >= p.SystolicBP {
		p.DiastolicBP = p.SystolicBP - 20
	}

	p.Cholesterol = g.level(0.75, 0.13)
	p.Glucose = g.level(0.85, 0.07)
	p.Smokes = g.rand.Float64() < 0.09
	p.DrinksAlcohol = g.rand.Float64() < 0.05
	p.PhysicallyActive = g.rand.Float64() < 0.8

	g.stats.Generated++
	if g.config.InvalidRate > 0 && g.rand.Float64() < g.config.InvalidRate {
		g.corrupt(&p)
		g.stats.Invalid++
	}
	return p
}

// Stats возвращает снимок счётчиков.
func (g *Generator) Stats() GeneratorStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

func (g *Generator) normal(mean, stddev float64, bounds risk.Bounds) float64 {
	v := mean + g.rand.NormFloat64()*stddev
	return math.Max(bounds.Min, math.Min(bounds.Max, v))
}

func (g *Generator) level(normal, above float64) risk.Level {
	switch r := g.rand.Float64(); {
	case r < normal:
		return risk.LevelNormal
	case r < normal+above:
		return risk.LevelAboveNormal
	default:
		return risk.LevelWellAboveNormal
	}
}

// corrupt портит ровно одно поле.
func (g *Generator) corrupt(p *risk.HealthParameters) {
	switch g.rand.Intn(5) {
	case 0:
		p.Age = 0
	case 1:
		p.Height = risk.HeightBounds.Max + 1
	case 2:
		p.SystolicBP = int(risk.SystolicBPBounds.Min) - 1
	case 3:
		p.Gender = ""
	default:
		p.Cholesterol = ""
	}
}
