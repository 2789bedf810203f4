package infoService

import (
	"context"

	"talksy/internal/api/info"
	"talksy/pkg/search"
	"talksy/pkg/weather"
	"talksy/pkg/wikipedia"

	"github.com/sirupsen/logrus"
)

// Sentences returned by the /wikipedia endpoint.
const summarySentences = 2

type IInfoService interface {
	Wikipedia(ctx context.Context, query string) (*info.ResultResponse, error)
	YouTube(ctx context.Context, query string) (*info.ResultResponse, error)
	Google(ctx context.Context, query string) (*info.ResultResponse, error)
	Weather(ctx context.Context, city string) (*info.WeatherResponse, error)
}

type infoService struct {
	log       *logrus.Logger
	wikipedia wikipedia.IWikipedia
	search    search.ISearch
	weather   weather.IWeather
}

// New wires the lookup collaborators. Any of them may be nil, in which case
// the matching endpoint answers 503.
func New(log *logrus.Logger, wiki wikipedia.IWikipedia, s search.ISearch, w weather.IWeather) IInfoService {
	return &infoService{
		log:       log,
		wikipedia: wiki,
		search:    s,
		weather:   w,
	}
}
