package search

import (
	"fmt"
	"math"
	"strings"

	"jobscout/internal/models"
)

// Score weights: skill match dominates, location and visa/remote signals
// contribute equally.
const (
	skillWeight    = 0.6
	locationWeight = 0.2
	visaWeight     = 0.2
)

// TargetCountries is the fixed allow-list of countries a match in the
// location field counts toward the location score.
var TargetCountries = []string{
	"Ireland", "Netherlands", "Finland", "Denmark", "Luxembourg",
	"Germany", "Sweden", "Norway", "Switzerland", "Belgium", "France",
	"Estonia", "Lithuania", "Latvia", "Czech Republic",
}

var remoteKeywords = []string{"remote", "work from home"}
var visaKeywords = []string{"visa", "sponsorship", "relocation"}

// ScoreJob rates a listing against the user's declared skills and returns
// a score in [0,100] rounded to two decimals, plus a human-readable
// explanation. Unlike ExtractSkills, every user skill is tested directly
// as a substring of the combined title+description text.
func ScoreJob(listing models.Listing, userSkills map[string]struct{}) (float64, string) {

	jobText := strings.ToLower(listing.Title + " " + listing.Description)
	location := strings.ToLower(listing.Location)

	matched := 0
	for skill := range userSkills {
		if strings.Contains(jobText, strings.ToLower(skill)) {
			matched++
		}
	}
	skillScore := float64(matched) / float64(max(1, len(userSkills)))

	locationScore := 0.0
	for _, country := range TargetCountries {
		if strings.Contains(location, strings.ToLower(country)) {
			locationScore = 1.0
			break
		}
	}

	visaScore := 0.0
	if containsAny(jobText, visaKeywords) || containsAny(jobText, remoteKeywords) ||
		containsAny(location, remoteKeywords) {
		visaScore = 1.0
	}

	score := 100 * (skillWeight*skillScore + locationWeight*locationScore + visaWeight*visaScore)
	score = math.Round(score*100) / 100

	locationLabel := "Other"
	if locationScore > 0 {
		locationLabel = "Europe"
	}
	visaLabel := "No"
	if visaScore > 0 {
		visaLabel = "Yes"
	}
	explanation := fmt.Sprintf("Skill match: %d/%d; Location: %s; Visa/Remote: %s",
		matched, len(userSkills), locationLabel, visaLabel)

	return score, explanation
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
