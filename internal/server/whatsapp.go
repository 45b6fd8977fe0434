package server

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// queryIntent matches bot messages that ask for listings instead of
// submitting one.
var queryIntent = regexp.MustCompile(`(?i)^\s*(find|search|show)\b`)

// fillerWords are stripped from the front of a query message after the verb.
var fillerWords = regexp.MustCompile(`(?i)^(me|for|a|an|listings?|properties|in|at|around)\s+`)

type twimlReply struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WhatsApp handles the messaging-bot webhook. The provider posts form
// fields: Body is the message text, From is the sender.
func (s *Server) WhatsApp(c *gin.Context) {
	body := c.PostForm("Body")
	from := c.PostForm("From")
	log.Printf("whatsapp message from %s: %s", from, body)

	if body == "" {
		c.XML(http.StatusOK, twimlReply{Message: "Send me a listing description, or 'find <area>' to search."})
		return
	}

	if queryIntent.MatchString(body) {
		s.whatsappQuery(c, body)
		return
	}

	rec, err := s.Engine.ProcessListing(c.Request.Context(), body)
	if err != nil {
		c.XML(http.StatusOK, twimlReply{Message: "Sorry, I could not extract a listing from that message. Try adding the price and area."})
		return
	}

	msg := fmt.Sprintf("Listed: %s in %s for %.0f (%s). Tags: %s",
		rec.Title, rec.LocationName, rec.Price, rec.Type, strings.Join(rec.VibeTags, ", "))
	c.XML(http.StatusOK, twimlReply{Message: msg})
}

func (s *Server) whatsappQuery(c *gin.Context, body string) {
	query := strings.TrimSpace(queryIntent.ReplaceAllString(body, ""))
	for fillerWords.MatchString(query) {
		query = fillerWords.ReplaceAllString(query, "")
	}

	recs, err := s.Engine.SearchListings(c.Request.Context(), query, 3)
	if err != nil {
		c.XML(http.StatusOK, twimlReply{Message: "Search is unavailable right now, try again shortly."})
		return
	}
	if len(recs) == 0 {
		c.XML(http.StatusOK, twimlReply{Message: fmt.Sprintf("No listings found for %q yet.", query)})
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top listings for %q:\n", query)
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s - %.0f (%s)\n", i+1, rec.Title, rec.Price, rec.LocationName)
	}
	c.XML(http.StatusOK, twimlReply{Message: b.String()})
}
