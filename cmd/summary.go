/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notargets/femesh/mesh"
)

func newSummaryCmd() *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Convert a set of reports and print statistics of the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			job, err := processInput(cmd)
			if err != nil {
				return
			}
			doc, err := convertJob(job)
			if err != nil {
				return
			}
			s, err := mesh.Summarize(doc)
			if err != nil {
				return
			}
			s.Print(cmd.OutOrStdout())
			return
		},
	}
	addInputFlags(summaryCmd)
	return summaryCmd
}
