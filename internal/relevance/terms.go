// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

// ResearchTerms is the vocabulary used to score a paper's title+abstract for
// research content. Each distinct matched term contributes one point. The
// list is data, not logic: tune it without touching the scoring code.
var ResearchTerms = []string{
	// Core ML/AI terminology
	"paper", "study", "model", "training", "benchmark", "evaluation",
	"dataset", "algorithm", "framework", "architecture", "fine-tuning",
	"fine tuning", "finetuning", "rlhf", "interpretability", "mechanistic",
	"alignment", "probe", "ablation", "embedding", "transformer", "neural",
	"gradient", "loss", "optimization", "inference", "scaling law",
	"emergent", "capability", "reinforcement learning", "supervised learning",
	"pretraining", "pre-training", "backpropagation", "attention mechanism",
	"language model", "diffusion", "generative", "classification",
	"regression", "tokenizer", "tokenization", "perplexity", "accuracy",
	"precision", "recall", "f1 score", "auc", "roc", "cross-entropy",
	"softmax", "activation", "layer", "hidden state", "representation",
	"latent", "feature", "weight", "parameter", "hyperparameter",
	"convergence", "overfit", "regularization", "dropout", "batch",
	"epoch", "learning rate", "sgd", "adam", "llm", "gpt", "bert",
	// Safety-specific
	"red team", "red-team", "safety", "robustness", "adversarial",
	"reward model", "constitutional", "jailbreak", "guardrail",
	"watermark", "detection", "deception", "sycophancy", "power-seeking",
	"corrigibility", "oversight", "monitor", "audit", "specification",
	// Academic indicators
	"arxiv", "abstract", "methodology", "experiment", "result",
	"finding", "contribution", "technical report", "system card",
	"we propose", "we present", "we show", "we demonstrate",
	"we introduce", "we evaluate", "we find", "our method",
	"our approach", "our model", "state-of-the-art", "sota",
	"baseline", "comparison", "ablation study", "empirical",
	"theoretical", "formal", "proof", "theorem", "lemma",
	"proposition", "corollary", "analysis", "measurement",
	"quantitative", "qualitative", "survey", "review",
	// Infrastructure
	"compute", "flops", "gpu", "tpu", "distributed training",
	"data augmentation", "curriculum learning", "knowledge distillation",
	"multi-task", "transfer learning", "zero-shot", "few-shot",
	"in-context learning", "chain of thought", "prompting",
}

// ResearchOrgs are organizations known to produce research. Papers from
// them pass with a lower score threshold. Keys are lowercase.
var ResearchOrgs = map[string]bool{
	"anthropic": true, "openai": true, "google deepmind": true,
	"microsoft research": true, "redwood research": true,
	"alignment forum": true, "metr": true, "apollo research": true,
	"arc": true, "miri": true, "cais": true, "far ai": true,
	"uk aisi": true, "us aisi": true, "epoch ai": true, "chai": true,
	"mats": true, "govai": true, "cset": true, "iaps": true,
	"cltr": true, "rand": true, "dan hendrycks": true,
	"paul christiano": true, "yoshua bengio": true, "lennart heim": true,
	"fli": true, "lesswrong": true,
}

// nonResearchPhrases reject a paper outright when its title contains one as
// a whole word or phrase, regardless of vocabulary score: hiring
// announcements, funding and corporate news, and generic organizational
// updates. Matching is word-boundary aware with plural tolerance, so list
// the verb forms explicitly ("announce" also covers "announces" but not
// "announcement").
var nonResearchPhrases = []string{
	// Hiring
	"hiring", "new hire", "join our team", "now recruiting",
	"open positions", "job opening",
	// Corporate / funding news
	"announce", "announced", "announcing", "announcement",
	"launches", "launched", "raises", "funding",
	"acquires", "acquired", "ipo", "valuation", "partnership",
	"stock", "shares", "layoff",
	// People moves
	"appoints", "appointed", "joins as", "steps down", "ceo", "cto",
	"executive",
	// Meta / periodic content
	"podcast", "interview", "webinar", "newsletter", "roundup",
	"recap", "year in review",
	// Opinion
	"opinion", "editorial", "commentary",
}
