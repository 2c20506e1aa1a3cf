package constants

const (
	SearchEventsExchange     = "listing_search_exchange"
	SearchEventsExchangeType = "topic"

	RoutingKeySearchPerformed = "search.performed"

	SearchPerformedEventType    = "ListingSearchPerformedEvent"
	SearchPerformedEventVersion = "1.0.0"
)
