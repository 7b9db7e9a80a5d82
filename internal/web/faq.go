package web

// FAQEntry is one question of the FAQ section. Paragraphs render before the
// bullet list, Notes after it.
type FAQEntry struct {
	Question   string
	Paragraphs []string
	Bullets    []string
	Notes      []string
	Code       string
}

const transportsArticle = "https://neon.tech/blog/http-vs-websockets-for-postgres-queries-at-the-edge"

var faq = []FAQEntry{
	{
		Question: "What does this benchmark measure?",
		Paragraphs: []string{
			"The roundtrip latency of a simple SELECT issued from serverless functions to databases in many regions, " +
				"compared across HTTP and WebSocket connections through the Neon serverless driver and classic TCP connections through pg.",
		},
		Bullets: []string{
			"Network latency between the function region and the database region",
			"Connection establishment",
			"Query execution and result retrieval",
		},
	},
	{
		Question: "What are cold and hot queries?",
		Paragraphs: []string{
			"A cold query is the first query of a benchmark run. Every benchmark database scales to zero, so a cold query includes starting the database.",
			"A hot query runs immediately after the cold one against the now running database and is the best case: network roundtrip plus execution.",
		},
		Notes: []string{
			"Cold latency shows the worst case, hot latency the steady state.",
		},
	},
	{
		Question: "What's the difference between HTTP and WebSocket connections?",
		Paragraphs: []string{
			"HTTP needs fewer roundtrips to set up and wins for one query per invocation, but has no sessions, interactive transactions, NOTIFY or COPY.",
			"WebSocket pays a slower first connection and is then very fast for every following query on the same connection, with full Postgres semantics.",
		},
		Notes: []string{
			"This benchmark measures single-shot queries, which favors HTTP.",
		},
	},
	{
		Question: "What about TCP connections?",
		Paragraphs: []string{
			"TCP connections use the standard pg Pool over port 5432 and are measured in selected regions for comparison with the serverless transports.",
		},
		Bullets: []string{
			"HTTP: 3 roundtrips for the first query",
			"WebSocket: 4 roundtrips",
			"TCP: 8 roundtrips",
		},
	},
	{
		Question: "How often are benchmark requests made?",
		Paragraphs: []string{
			"Every 15 minutes from each function to each database, so databases have scaled to zero between runs. " +
				"Each run records one cold and one hot query, 96 runs per pair and day.",
		},
		Notes: []string{
			"The table shows averages over the trailing window.",
		},
	},
	{
		Question: "What query is being executed for the benchmark?",
		Paragraphs: []string{
			"A deliberately trivial query, so the measurement is dominated by connection and network latency:",
		},
		Code: "SELECT 1",
	},
}

// FAQ returns the FAQ entries in display order.
func FAQ() []FAQEntry {
	return faq
}
