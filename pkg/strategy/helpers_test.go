package strategy_test

import (
	"math/rand/v2"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"github.com/aretw0/gymnasion/pkg/strategy"
)

func newTurn(text string, sess *domain.Session) *strategy.Turn {
	return newSeededTurn(text, sess, 1)
}

func newSeededTurn(text string, sess *domain.Session, seed uint64) *strategy.Turn {
	if sess == nil {
		sess = domain.NewSession("test")
	}
	return &strategy.Turn{
		Text:    text,
		Session: sess,
		Lexicon: lexicon.Default(),
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}
