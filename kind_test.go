package zhextract_test

import (
	"testing"

	"github.com/fwojciec/zhextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageVariant(t *testing.T) {
	t.Parallel()

	t.Run("defaults to answer list", func(t *testing.T) {
		t.Parallel()

		v, err := zhextract.ParsePageVariant("")

		require.NoError(t, err)
		assert.Equal(t, zhextract.VariantAnswerList, v)
	})

	t.Run("accepts every known variant case insensitively", func(t *testing.T) {
		t.Parallel()

		for _, want := range zhextract.PageVariants() {
			got, err := zhextract.ParsePageVariant(" " + string(want) + " ")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		got, err := zhextract.ParsePageVariant("TOPIC")
		require.NoError(t, err)
		assert.Equal(t, zhextract.VariantTopic, got)
	})

	t.Run("rejects unknown variant", func(t *testing.T) {
		t.Parallel()

		_, err := zhextract.ParsePageVariant("column")

		require.Error(t, err)
		assert.Equal(t, zhextract.EINVALID, zhextract.ErrorCode(err))
	})
}

func TestPageVariant_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant zhextract.PageVariant
		want    zhextract.VariantKinds
	}{
		{zhextract.VariantAnswerList, zhextract.VariantKinds{Answer: zhextract.KindSimpleAnswer, Question: zhextract.KindQuestionSummary}},
		{zhextract.VariantAuthorActivity, zhextract.VariantKinds{Answer: zhextract.KindSimpleAnswer, Question: zhextract.KindQuestionSummary, Extra: zhextract.KindAuthorProfile}},
		{zhextract.VariantTopic, zhextract.VariantKinds{Answer: zhextract.KindSimpleAnswer, Question: zhextract.KindQuestionSummary, Extra: zhextract.KindTopic}},
		{zhextract.VariantCollection, zhextract.VariantKinds{Answer: zhextract.KindSimpleAnswer, Question: zhextract.KindQuestionSummary, Extra: zhextract.KindCollection}},
		{zhextract.VariantQuestion, zhextract.VariantKinds{Answer: zhextract.KindAnswer, Question: zhextract.KindQuestionDetail}},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.variant.Kinds())
		})
	}
}
