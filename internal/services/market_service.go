package services

import (
	"io"

	"papertrade/internal/history"
	"papertrade/internal/market"
	"papertrade/internal/models"
)

// marketService serves quotes from an immutable snapshot.
type marketService struct {
	provider market.Provider
	synth    *history.Synthesizer
}

// NewMarketService creates a new MarketServicer.
func NewMarketService(provider market.Provider, synth *history.Synthesizer) MarketServicer {
	if synth == nil {
		synth = history.NewSynthesizer()
	}
	return &marketService{provider: provider, synth: synth}
}

func (s *marketService) ListStocks() []models.Stock {
	return s.provider.List()
}

func (s *marketService) GetStock(symbol string) (models.Stock, error) {
	return s.provider.Lookup(symbol)
}

// History synthesizes a series for symbol. Unknown timeframes fall back to
// the default.
func (s *marketService) History(symbol, timeframe string) (*history.Series, error) {
	stock, err := s.provider.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	series := s.synth.Series(stock, history.ParseTimeframe(timeframe))
	return &series, nil
}

// Chart renders the synthesized series as a PNG into w.
func (s *marketService) Chart(symbol, timeframe string, w io.Writer) error {
	series, err := s.History(symbol, timeframe)
	if err != nil {
		return err
	}
	return history.RenderPNG(*series, w)
}
