// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method-and-pattern matching on the standard ServeMux:

	POST   /polls              create a poll
	GET    /polls              list polls (category, tags, sort filters)
	GET    /polls/{id}         fetch a poll
	POST   /polls/{id}/vote    record a vote
	GET    /polls/{id}/results tallies with percentages
	GET    /polls/{id}/live    WebSocket tally stream
	POST   /polls/{id}/close   close voting (X-Creator-Key)
	DELETE /polls/{id}         delete poll (X-Creator-Key)
	POST   /voters             issue a guest voter token
	GET    /health             liveness probe

All routes except the WebSocket are wrapped with request logging.
*/
package router
