package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samarth5630/stock-dashboard/internal/engine"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/marketdata"
)

// responseMargin is left between the analysis deadline and the write timeout
// so a timed-out lookup can still render its error.
const responseMargin = 5 * time.Second

const (
	infoEnterSymbol = "Please enter a valid NSE stock symbol like TCS.NS or INFY.NS."
	errFetchMessage = "❌ Error fetching data. Please check the symbol and try again."
)

// statusFor maps an analysis failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// pageMessage is the text the HTML view shows for a failed lookup. Fetch
// failures get a generic message; their cause only goes to the log.
func pageMessage(err error, symbol string) string {
	switch {
	case errors.Is(err, engine.ErrInvalidSymbol):
		return "❌ Invalid stock symbol. Use letters, digits and an exchange suffix such as .NS or .BO."
	case errors.Is(err, engine.ErrInsufficientHistory):
		return "❌ Not enough price history for " + symbol + " to compute the moving averages."
	default:
		return errFetchMessage
	}
}

// analysisContext bounds a lookup so it finishes before the server's write
// timeout cuts the connection.
func (s *Server) analysisContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request.Context()
	budget := time.Duration(s.cfg.Server.WriteTimeoutSeconds)*time.Second - responseMargin
	if budget <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, budget)
}

func apiMode(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.Query("api"))
	return err == nil && v
}

// dashboard serves GET /. With api=true it returns the flat JSON record,
// otherwise the HTML page.
func (s *Server) dashboard(c *gin.Context) {
	raw, present := c.GetQuery("symbol")
	if !present {
		raw = s.cfg.Dashboard.DefaultSymbol
	}

	if apiMode(c) {
		if strings.TrimSpace(raw) == "" {
			raw = s.cfg.Dashboard.DefaultSymbol
		}
		s.lookupJSON(c, raw)
		return
	}

	page := newPage(s.cfg, strings.TrimSpace(raw))
	if strings.TrimSpace(raw) == "" {
		page.Info = infoEnterSymbol
		c.HTML(http.StatusOK, "dashboard.html", page)
		return
	}

	symbol, err := marketdata.NormalizeSymbol(raw)
	if err != nil {
		page.Error = pageMessage(err, raw)
		c.HTML(statusFor(err), "dashboard.html", page)
		return
	}
	page.Symbol = symbol

	ctx, cancel := s.analysisContext(c)
	defer cancel()
	analysis, err := s.engine.Analyze(ctx, symbol)
	if err != nil {
		logger.Debug(ctx, "Dashboard lookup failed", "symbol", symbol, "status", statusFor(err))
		page.Error = pageMessage(err, symbol)
		c.HTML(statusFor(err), "dashboard.html", page)
		return
	}

	page.Result = newResultView(analysis, s.cfg.Dashboard.ChartDays)
	c.HTML(http.StatusOK, "dashboard.html", page)
}

func (s *Server) lookupJSON(c *gin.Context, raw string) {
	symbol, err := marketdata.NormalizeSymbol(raw)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.analysisContext(c)
	defer cancel()
	analysis, err := s.engine.Analyze(ctx, symbol)
	if err != nil {
		logger.Debug(ctx, "API lookup failed", "symbol", symbol, "status", statusFor(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis.Flat())
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
