package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
	"github.com/Tjindl/HackTheCoast-sub000/internal/matching"
)

const promptExit = "Exit"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a student profile against the award catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("profile", "p", "", "path to a student profile JSON file")
	matchCmd.Flags().IntP("top", "t", 0, "assess chances for the top N matches and exit")
	matchCmd.Flags().BoolP("report-only", "r", false, "print the ranked matches without chance assessment")
	matchCmd.MarkFlagRequired("profile")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	profile := loadProfile(cmd.Flag("profile").Value.String(), log)

	store := openCatalog(config, log)
	defer store.Close()

	awards, err := store.List()
	if err != nil {
		log.Fatal("reading catalog", zap.Error(err))
	}

	result := matching.RankAndCategorize(profile, awards)

	log.Info("matching completed",
		zap.Int("catalog_size", awards.Len()),
		zap.Int("total_matches", result.TotalMatches),
		zap.Int("perfect", len(result.Categorized.Perfect)),
		zap.Int("good", len(result.Categorized.Good)),
		zap.Int("partial", len(result.Categorized.Partial)),
	)

	printJSON(result)

	if result.TotalMatches == 0 {
		log.Info("exiting", zap.String("reason", "no applicable awards found"))
		return
	}

	if reportOnly, _ := cmd.Flags().GetBool("report-only"); reportOnly {
		return
	}

	assessor := newChanceAssessor(ctx, config, log)

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		targets := make([]*award.Award, 0, top)
		for _, m := range result.Matches {
			targets = append(targets, m.Award)
		}

		assessments := assessor.AssessMany(ctx, profile, targets, top)
		printJSON(assessments)
		return
	}

	for {
		items := make([]string, 0, result.TotalMatches+1)
		for _, m := range result.Matches {
			items = append(items, fmt.Sprintf("%s %s (score %d)", m.Award.ID, m.Award.Name, m.MatchScore))
		}

		prompt := promptui.Select{
			Label: "Choose an award to assess and press ENTER",
			Items: append(items, promptExit),
		}

		_, selected, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if selected == promptExit {
			return
		}

		awardID := strings.Split(selected, " ")[0]
		target := awards.FindByID(awardID)
		if target == nil {
			log.Fatal("there is no such award id", zap.String("award_id", awardID))
		}

		printJSON(assessor.Assess(ctx, profile, target))
	}
}

func loadProfile(path string, log *zap.Logger) *award.StudentProfile {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("reading student profile", zap.String("path", path), zap.Error(err))
	}

	var profile award.StudentProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Fatal("parsing student profile", zap.String("path", path), zap.Error(err))
	}

	if err := profile.Validate(); err != nil {
		log.Fatal("invalid student profile", zap.String("path", path), zap.Error(err))
	}

	return &profile
}

func printJSON(v any) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(pretty))
}
