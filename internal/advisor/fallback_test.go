package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackConservativeShape(t *testing.T) {
	adv := Fallback(`{"signal":"LONG"}`, "调用异常")
	assert.Equal(t, ActionWait, adv.Action)
	assert.Equal(t, DirectionLong, adv.Direction)
	assert.Equal(t, 0, adv.Confidence)
	assert.Equal(t, RiskHigh, adv.RiskLevel)
	assert.Equal(t, 0.9, adv.SLPct)
	assert.Equal(t, 2.2, adv.TPPct)
	assert.Contains(t, adv.Reason, "调用异常")
	assert.Len(t, adv.Checklist, 3)
	assert.NoError(t, validateAdvisory(adv), "回退建议必须通过出参校验")
}

func TestSignalDirection(t *testing.T) {
	cases := []struct {
		payload string
		want    string
	}{
		{`{"signal":"LONG"}`, DirectionLong},
		{`{"signal":"short"}`, DirectionShort},
		{`{"signal":"Short Squeeze"}`, DirectionShort},
		{`{"signal":"exit"}`, DirectionLong},
		{`{}`, DirectionLong},
		{`{"signal":123}`, DirectionLong},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SignalDirection(tc.payload), "payload=%s", tc.payload)
	}
}
