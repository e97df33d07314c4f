package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorForAllTypes(t *testing.T) {
	for _, et := range AllEntityTypes {
		d, ok := DescriptorFor(et)
		require.True(t, ok, "缺少描述符: %s", et)
		assert.Equal(t, et, d.Type)
		assert.NotEmpty(t, d.Fields)
		assert.NotEmpty(t, d.FuzzyFields)
	}

	_, ok := DescriptorFor("activity")
	assert.False(t, ok)
}

func TestFieldWeightsAreEnum(t *testing.T) {
	valid := map[float64]bool{WeightA: true, WeightB: true, WeightC: true}
	for _, et := range AllEntityTypes {
		d, _ := DescriptorFor(et)
		for _, spec := range d.Fields {
			assert.True(t, valid[spec.Weight],
				"%s.%s 权重 %v 不在枚举内", et, spec.Name, spec.Weight)
		}
	}
}

func TestFuzzyFieldsAreSubsetOfFields(t *testing.T) {
	for _, et := range AllEntityTypes {
		d, _ := DescriptorFor(et)
		names := make(map[string]bool, len(d.Fields))
		for _, spec := range d.Fields {
			names[spec.Name] = true
		}
		for _, f := range d.FuzzyFields {
			assert.True(t, names[f], "%s 模糊字段 %s 未在 Fields 中声明", et, f)
		}
	}
}

func TestUserDescriptorWeights(t *testing.T) {
	d, _ := DescriptorFor(EntityUser)

	weights := make(map[string]float64)
	for _, spec := range d.Fields {
		weights[spec.Name] = spec.Weight
	}

	assert.Equal(t, WeightA, weights["username"])
	assert.Equal(t, WeightA, weights["first_name"])
	assert.Equal(t, WeightA, weights["last_name"])
	assert.Equal(t, WeightB, weights["bio"])
	assert.Equal(t, WeightC, weights["location"])
}

func TestRuleForUndeclaredKey(t *testing.T) {
	d, _ := DescriptorFor(EntityNews)

	assert.NotNil(t, d.ruleFor("category"))
	assert.Nil(t, d.ruleFor("min_price"), "news 不应声明价格过滤")
	assert.Nil(t, d.ruleFor("nonsense"))
}

func TestParseEntityType(t *testing.T) {
	et, err := ParseEntityType("thread")
	require.NoError(t, err)
	assert.Equal(t, EntityThread, et)

	_, err = ParseEntityType("threads")
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = ParseEntityType("")
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestDefaultMultiSearchTypesExcludePost(t *testing.T) {
	for _, et := range DefaultMultiSearchTypes {
		assert.NotEqual(t, EntityPost, et, "post 只能显式请求")
	}
	assert.Contains(t, AllEntityTypes, EntityPost)
}
