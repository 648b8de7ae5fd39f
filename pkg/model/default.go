package model

// DefaultTopology returns the built-in content-automation pipeline diagram.
// It is used when no topology file is configured and doubles as a realistic
// fixture for the layout engine.
func DefaultTopology() *Topology {
	return &Topology{
		Name: "Content Automation Pipeline",
		Nodes: []Node{
			{ID: "trend-scanner", Label: "Trend Scanner", Category: CategoryIdeation},
			{ID: "brand-kb", Label: "Brand Knowledge Base", Category: CategoryKnowledgeBase},
			{ID: "seed-engine", Label: "Seed Engine", Category: CategoryIdeation},
			{ID: "orchestrator", Label: "Plan Orchestrator", Category: CategoryUtilities},
			{ID: "draft-generator", Label: "Draft Generator", Category: CategoryGeneration},
			{ID: "media-generator", Label: "Media Generator", Category: CategoryGeneration},
			{ID: "scheduler", Label: "Post Scheduler", Category: CategoryUtilities},
			{ID: "social-api", Label: "Social Publisher", Category: CategoryAPIIntegrations},
			{ID: "cms-api", Label: "CMS Connector", Category: CategoryAPIIntegrations},
			{ID: "insight-collector", Label: "Insight Collector", Category: CategoryAnalysis},
			{ID: "engagement-analyzer", Label: "Engagement Analyzer", Category: CategoryAnalysis},
			{ID: "content-store", Label: "Content Store", Category: CategoryKnowledgeBase},
			{ID: "dashboard", Label: "Pipeline Dashboard", Subtitle: "you are here", Category: CategoryUtilities},
		},
		Edges: []Edge{
			{ID: "e-trends-seeds", Source: "trend-scanner", Target: "seed-engine", Label: "signals"},
			{ID: "e-kb-seeds", Source: "brand-kb", Target: "seed-engine"},
			{ID: "e-seeds-plans", Source: "seed-engine", Target: "orchestrator", Label: "seeds"},
			{ID: "e-plans-drafts", Source: "orchestrator", Target: "draft-generator", Label: "plans"},
			{ID: "e-plans-media", Source: "orchestrator", Target: "media-generator"},
			{ID: "e-kb-drafts", Source: "brand-kb", Target: "draft-generator", Label: "voice"},
			{ID: "e-drafts-queue", Source: "draft-generator", Target: "scheduler", Label: "drafts"},
			{ID: "e-media-queue", Source: "media-generator", Target: "scheduler"},
			{ID: "e-queue-social", Source: "scheduler", Target: "social-api", Label: "posts"},
			{ID: "e-queue-cms", Source: "scheduler", Target: "cms-api"},
			{ID: "e-social-metrics", Source: "social-api", Target: "insight-collector", Label: "metrics"},
			{ID: "e-metrics-analysis", Source: "insight-collector", Target: "engagement-analyzer"},
			{ID: "e-analysis-store", Source: "engagement-analyzer", Target: "content-store", Label: "insights"},
			{ID: "e-store-dashboard", Source: "content-store", Target: "dashboard"},
		},
		Descriptions: map[string]Description{
			"seed-engine": {
				Title:       "Seed Engine",
				Description: "Turns trend signals and brand context into scored content seeds ready for planning.",
				Details: []string{
					"Scores seeds by topical relevance",
					"Deduplicates against recent output",
					"Feeds the plan orchestrator",
				},
			},
			"orchestrator": {
				Title:       "Plan Orchestrator",
				Description: "Expands accepted seeds into multi-channel content plans and fans work out to the generators.",
				Details: []string{
					"One plan per seed and channel",
					"Tracks plan lifecycle state",
				},
			},
			"draft-generator": {
				Title:       "Draft Generator",
				Description: "Produces post drafts from content plans, constrained by the brand voice guidelines.",
				Details: []string{
					"Channel-specific formatting",
					"Brand voice injection from the knowledge base",
				},
			},
			"scheduler": {
				Title:       "Post Scheduler",
				Description: "Queues approved drafts and releases them to the publishing integrations at the planned time.",
				Details: []string{
					"Per-channel rate limits",
					"Retry window for failed publishes",
				},
			},
			"social-api": {
				Title:       "Social Publisher",
				Description: "Pushes scheduled posts to the connected social platforms and reports delivery status.",
			},
			"insight-collector": {
				Title:       "Insight Collector",
				Description: "Polls the platforms for per-post engagement metrics after publication.",
				Details: []string{
					"Impressions, reactions, shares",
					"Collection backoff per platform",
				},
			},
			"engagement-analyzer": {
				Title:       "Engagement Analyzer",
				Description: "Aggregates raw metrics into per-seed insights that close the loop back into ideation.",
			},
			"content-store": {
				Title:       "Content Store",
				Description: "Durable record of every seed, plan, post, and insight produced by the pipeline.",
			},
			"dashboard": {
				Title:       "Pipeline Dashboard",
				Description: "This application: read-only inspection of the pipeline's seeds, plans, posts, and insights.",
				Details: []string{
					"Architecture diagram (this view)",
					"Seed, plan, and post browsing",
				},
			},
		},
	}
}
