package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"topicscope/internal/topics"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Inspect and toggle topics (spec §4.7)",
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active topics",
	Run: func(cmd *cobra.Command, args []string) {
		mgr, err := openTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		for _, name := range mgr.ActiveKeywords() {
			fmt.Println(name)
		}
	},
}

var topicToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Turn a topic on or off",
	Long: `Toggle a single topic's active flag and persist the change atomically.

Example:
  topicctl topic toggle "World News" --on
  topicctl topic toggle Sports --off`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		on, _ := cmd.Flags().GetBool("on")
		off, _ := cmd.Flags().GetBool("off")
		if on == off {
			fmt.Fprintln(os.Stderr, "error: specify exactly one of --on or --off")
			os.Exit(1)
		}

		mgr, err := openTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		if err := mgr.SetTopic(args[0], on); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %v\n", args[0], on)
	},
}

func init() {
	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicToggleCmd)
	topicToggleCmd.Flags().Bool("on", false, "activate the topic")
	topicToggleCmd.Flags().Bool("off", false, "deactivate the topic")
}

func openTopics() (*topics.Manager, error) {
	return topics.Load(viper.GetString("topic_state_path"))
}
