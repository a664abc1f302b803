package advisor

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// 补齐后的建议在返回前过一遍 schema，守住"八字段齐全且取值合法"的出参约定。
const advisorySchemaJSON = `{
  "type": "object",
  "required": ["action", "direction", "confidence", "risk_level", "sl_pct", "tp_pct", "reason", "checklist"],
  "properties": {
    "action": {"type": "string", "enum": ["enter", "wait"]},
    "direction": {"type": "string", "enum": ["long", "short"]},
    "confidence": {"type": "integer", "minimum": 0, "maximum": 100},
    "risk_level": {"type": "string", "enum": ["low", "mid", "high"]},
    "sl_pct": {"type": "number", "exclusiveMinimum": 0},
    "tp_pct": {"type": "number", "exclusiveMinimum": 0},
    "reason": {"type": "string", "minLength": 1},
    "checklist": {"type": "array", "items": {"type": "string"}}
  }
}`

var advisorySchema = jsonschema.MustCompileString("advisory.schema.json", advisorySchemaJSON)

func validateAdvisory(adv Advisory) error {
	b, err := json.Marshal(adv)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	return advisorySchema.Validate(doc)
}
