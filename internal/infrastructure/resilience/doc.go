/*
Package resilience provides a circuit breaker for unreliable downstreams.

The remote game fetcher wraps its HTTP calls in a breaker so a flapping
origin fails fast instead of tying up request handlers on timeouts.

# Usage

	breaker := resilience.NewBreaker(resilience.Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	})

	err := breaker.Do(func() error {
		return client.Fetch()
	})

# States

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[probe ok]-> Closed
	                                              |
	                                       [probe fails]
	                                              v
	                                            Open
*/
package resilience
