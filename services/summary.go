package services

import (
	"fmt"
	"sort"
	"strings"

	"estate-builder/models"
	"estate-builder/utils"
)

// SummaryService renders a terminal report for a finished cleaning run.
type SummaryService struct {
	logger *utils.Logger
}

// NewSummaryService creates a SummaryService with the given logger.
func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Print writes the cleaning report to stdout.
func (s *SummaryService) Print(r *models.CleaningResult) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📋 CONTACT CLEANING REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Partition overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Records read     : \033[1m%d\033[0m\n", r.Stats.Total)
	fmt.Printf("  Valid (unique)   : \033[1;32m%d\033[0m\n", r.Stats.Valid)
	fmt.Printf("  Duplicates       : \033[1;33m%d\033[0m\n", r.Stats.Duplicates)
	fmt.Printf("  No usable phone  : \033[1;31m%d\033[0m\n", r.Stats.NoPhone)
	fmt.Printf("  Malformed emails : %d (kept, flagged)\n", r.Stats.InvalidEmail)
	fmt.Println()

	if r.Stats.Total > 0 {
		rate := float64(r.Stats.Valid) / float64(r.Stats.Total) * 100
		fmt.Printf("  Keep rate : \033[1m%.1f%%\033[0m\n\n", rate)
	}

	// Valid contacts grouped by category, busiest first
	fmt.Printf("\033[1;33m  Contacts by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	byCategory := make(map[string]int)
	for _, contact := range r.Valid {
		if contact.Category != "" {
			byCategory[contact.Category]++
		}
	}
	if len(byCategory) == 0 {
		fmt.Printf("  No category data\n")
	} else {
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range byCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			return cats[i].count > cats[j].count
		})
		for _, cc := range cats {
			bar := strings.Repeat("█", cc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(cc.cat, 28), bar, cc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
