package gap

// reportSchema validates the model's gap output before it is trusted.
const reportSchema = `{
  "type": "object",
  "required": ["match_percentage", "missing_keywords", "advice"],
  "properties": {
    "match_percentage": {"type": "number"},
    "missing_keywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "advice": {"type": "string"}
  }
}`
