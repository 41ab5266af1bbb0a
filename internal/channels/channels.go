package channels

import (
	"sync"

	"github.com/AbdulWasayUl/graphql-countries/models"
)

type Channels struct {
	DataRequest chan models.DataRequest
	WG          *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 100
	return &Channels{
		DataRequest: make(chan models.DataRequest, bufferSize),
		WG:          &sync.WaitGroup{},
	}
}

// Submit registers req with the wait group before queueing it, so a Wait
// that follows Submit always covers req.
func (c *Channels) Submit(req models.DataRequest) {
	c.WG.Add(1)
	c.DataRequest <- req
}
