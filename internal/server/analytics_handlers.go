package server

import (
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) parsePeriod(c *fiber.Ctx) (service.Period, error) {
	return service.ParsePeriod(c.Query("period"))
}

// GetAnalyticsOverview returns the headline counters for a period.
func (s *Server) GetAnalyticsOverview(c *fiber.Ctx) error {
	period, err := s.parsePeriod(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	overview, err := s.analyticsService.Overview(c.Context(), period)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  period.Name,
		"data":    overview,
	})
}

// GetAnalyticsTimeSeries returns zero-filled chronological buckets.
func (s *Server) GetAnalyticsTimeSeries(c *fiber.Ctx) error {
	period, err := s.parsePeriod(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	buckets, err := s.analyticsService.TimeSeries(c.Context(), period)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  period.Name,
		"data":    buckets,
	})
}

// GetAnalyticsGeo returns per-country view counts.
func (s *Server) GetAnalyticsGeo(c *fiber.Ctx) error {
	period, err := s.parsePeriod(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	stats, err := s.analyticsService.Geo(c.Context(), period)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  period.Name,
		"data":    stats,
	})
}

// GetAnalyticsDevices returns device, browser, and OS breakdowns.
func (s *Server) GetAnalyticsDevices(c *fiber.Ctx) error {
	period, err := s.parsePeriod(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	breakdown, err := s.analyticsService.Devices(c.Context(), period)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  period.Name,
		"data":    breakdown,
	})
}

// GetAnalyticsPages returns the paginated top-pages listing.
func (s *Server) GetAnalyticsPages(c *fiber.Ctx) error {
	period, err := s.parsePeriod(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	page, limit := parsePagination(c)

	result, err := s.analyticsService.TopPages(c.Context(), period, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"period":     period.Name,
		"data":       result.Data,
		"pagination": result.Pagination,
	})
}
