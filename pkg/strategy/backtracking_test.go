package strategy_test

import (
	"testing"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecallNoun(t *testing.T) {
	t.Run("Not Bored Enough", func(t *testing.T) {
		sess := domain.NewSession("recall")
		sess.Append("The moon rose.")
		sess.Boredom = domain.RecallBoredom - 1

		resp, err := strategy.RecallNoun(newTurn("and then", sess))
		require.NoError(t, err)
		assert.Empty(t, resp)
		assert.Equal(t, domain.RecallBoredom-1, sess.Boredom)
	})

	t.Run("Recalls Transcript Noun", func(t *testing.T) {
		sess := domain.NewSession("recall")
		sess.Append("The moon rose.")
		sess.Append("and then")
		sess.Boredom = domain.RecallBoredom

		resp, err := strategy.RecallNoun(newTurn("and then", sess))
		require.NoError(t, err)
		assert.Regexp(t, `^(I grow weary\.|I grow bored\.|You have lost the thread\.) (Return to the part about the|Tell me more about the) moon\.$`, resp)
		assert.Equal(t, 0, sess.Boredom)
	})

	t.Run("Punctuated Noun Across Lines", func(t *testing.T) {
		sess := domain.NewSession("recall")
		sess.Append("and then")
		sess.Append("I dream of the endless sea!")
		sess.Boredom = domain.RecallBoredom

		resp, err := strategy.RecallNoun(newTurn("and then", sess))
		require.NoError(t, err)
		assert.Regexp(t, ` sea\.$`, resp)
	})

	t.Run("Nothing Recallable", func(t *testing.T) {
		sess := domain.NewSession("recall")
		sess.Append("the wolf and the horse")
		sess.Boredom = 7

		resp, err := strategy.RecallNoun(newTurn("the wolf and the horse", sess))
		require.NoError(t, err)
		assert.Empty(t, resp)
		assert.Equal(t, 7, sess.Boredom)
	})
}

func TestComparison(t *testing.T) {
	t.Run("Compares Old And Current", func(t *testing.T) {
		sess := domain.NewSession("compare")
		sess.Append("The sky was grey")
		sess.Append("A wolf runs")
		sess.Boredom = domain.RecallBoredom

		resp, err := strategy.Comparison(newTurn("A wolf runs", sess))
		require.NoError(t, err)
		assert.Regexp(t, `^Now compare the sky to the wolf\. Which `, resp)
		assert.Equal(t, 0, sess.Boredom)
	})

	t.Run("No Current Noun", func(t *testing.T) {
		sess := domain.NewSession("compare")
		sess.Append("The sky was grey")
		sess.Append("nothing here")
		sess.Boredom = domain.RecallBoredom

		resp, err := strategy.Comparison(newTurn("nothing here", sess))
		require.NoError(t, err)
		assert.Empty(t, resp)
		assert.Equal(t, domain.RecallBoredom, sess.Boredom)
	})

	t.Run("Not Bored Enough", func(t *testing.T) {
		sess := domain.NewSession("compare")
		sess.Append("The sky was grey")
		sess.Boredom = 1

		resp, err := strategy.Comparison(newTurn("A wolf runs", sess))
		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}
