package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dazhuang0717-violet/communicationscorer/internal/ingest"
	"github.com/dazhuang0717-violet/communicationscorer/internal/judge"
	"github.com/dazhuang0717-violet/communicationscorer/internal/model"
)

var precheckCmd = &cobra.Command{
	Use:   "precheck",
	Short: "Judge a draft document before distribution",
	Long: `Runs the LLM judgment dimensions against a local draft (.docx or
.txt) without any volume or tier scoring. Useful for checking how well
a press release carries the key message before it goes out.`,
	RunE: runPrecheck,
}

func init() {
	f := precheckCmd.Flags()
	f.String("doc", "", "draft document path (.docx or .txt)")
	f.String("key-message", "", "campaign key message (overrides config)")
	f.String("project-desc", "", "project description (overrides config)")
	f.String("audience", "", "target audience: general, patient, or hcp (overrides config)")
	_ = precheckCmd.MarkFlagRequired("doc")

	rootCmd.AddCommand(precheckCmd)
}

func runPrecheck(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applyScoreOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	campaign, err := buildCampaign(cmd, cfg)
	if err != nil {
		return err
	}

	docPath, _ := cmd.Flags().GetString("doc")
	content, err := loadDraft(docPath)
	if err != nil {
		return err
	}

	j := buildJudge(cfg).Judge(ctx, judge.Input{
		Content:            content,
		KeyMessage:         campaign.KeyMessage,
		ProjectDescription: campaign.ProjectDescription,
		Audience:           campaign.Audience,
		MediaName:          "internal draft",
	})

	if j.Status != model.StatusSuccess {
		fmt.Printf("Status: %s\n", j.Status)
		if j.Detail != "" {
			fmt.Printf("Detail: %s\n", j.Detail)
		}
		return nil
	}

	fmt.Printf("Key message fidelity: %.1f / 10\n", j.KMScore)
	fmt.Printf("Acquisition appeal:   %.1f / 10\n", j.AcquisitionScore)
	fmt.Printf("Audience precision:   %.1f / 10\n", j.AudiencePrecisionScore)
	if j.Comment != "" {
		fmt.Printf("\n%s\n", j.Comment)
	}
	return nil
}

func loadDraft(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return ingest.ExtractDocx(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", eris.Wrap(err, "precheck: read draft")
		}
		return string(data), nil
	default:
		return "", eris.Errorf("precheck: unsupported draft format %q (want .docx or .txt)", filepath.Ext(path))
	}
}
