package analysis

import "fmt"

// sampleCorpus is a fixed set of source snippets used by the quick self test.
var sampleCorpus = []string{
	"// Generated by Claude AI\nfunction processData() {\n  return data.map(x => x * 2);\n}",
	"# AI-generated code\ndef analyze_metrics():\n    return {k: v for k, v in data.items()}",
	"/* Human-written code */\nclass DataProcessor {\n  constructor() { this.cache = new Map(); }\n}",
	"// Created with GitHub Copilot\nconst results = await Promise.all(requests);",
	"# Standard implementation\nimport numpy as np\nresults = np.array(data)",
}

// Sample returns the i-th synthetic file of the self-test corpus.
func Sample(i int) string {
	return fmt.Sprintf("%s\n// File %d", sampleCorpus[i%len(sampleCorpus)], i)
}
