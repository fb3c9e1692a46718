// GuestReview Genius is an AI assistant service for vacation rental hosts.
//
// It proxies an OpenAI-compatible completion API behind two endpoints:
//   - A chat proxy that drafts guest review responses, grounded in host
//     guidelines and playbook documents assembled into the system prompt
//   - A feedback summarization proxy with a freshness-bounded cache
//
// It also records survey submissions, raw feedback, and chat
// transcripts, and exposes them through admin endpoints.
//
// Usage:
//
//	# Start the server with default configuration
//	genius run
//
//	# Start with a custom configuration file
//	genius run --config /path/to/genius.yaml
//
//	# Show version information
//	genius version
//
//	# List stored records from the command line
//	genius records surveys --output json
package main

func main() {
	Execute()
}
