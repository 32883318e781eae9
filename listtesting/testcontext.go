package listtesting

import (
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log  logger.Logger
	Rand *rand.Rand
	T    *testing.T
	Cfg  TestConfig

	nextID int64
}

type TestConfig struct {
	// We seed the RNG from Seed. It is normal to force it to some fixed value
	// so that the generated operations are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	// MaxGroups bounds the number of groups the generator will grow a list
	// to. Defaults to 32.
	MaxGroups int
	// MaxChildren bounds the child count of generated groups. Defaults to 8.
	MaxChildren int
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	if cfg.MaxGroups == 0 {
		cfg.MaxGroups = 32
	}
	if cfg.MaxChildren == 0 {
		cfg.MaxChildren = 8
	}

	c := TestContext{
		T:      t,
		Cfg:    cfg,
		Rand:   rand.New(rand.NewSource(cfg.Seed)),
		nextID: 1,
	}
	logger.New("NOOP")
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// NextID returns a group id not previously handed out by this context.
func (c *TestContext) NextID() int64 {
	id := c.nextID
	c.nextID++
	return id
}
