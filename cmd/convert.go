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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/femesh/InputParameters"
	"github.com/notargets/femesh/logger"
	"github.com/notargets/femesh/mesh"
	"github.com/notargets/femesh/readers"
	"github.com/notargets/femesh/readfiles"
)

func newConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a set of reports into a mesh document",
		Long: `
Extracts the six reports named by the inputs file (-I) or the per report flags,
flags taking precedence, and writes the packed mesh document to --output or
standard output.`,
		Args: cobra.NoArgs,
		RunE: runConvert,
	}
	addInputFlags(convertCmd)
	convertCmd.Flags().StringP("output", "o", "", "file to write the mesh document to, default is standard output")
	convertCmd.Flags().StringP("format", "f", "json", "document encoding: json or yaml")
	_ = viper.BindPFlag("format", convertCmd.Flags().Lookup("format"))
	return convertCmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputs", "I", "", "YAML file naming the report files, like:"+InputParameters.ExampleFile)
	for _, name := range readers.ReportNames {
		cmd.Flags().String(name, "", fmt.Sprintf("file holding the %s report", name))
	}
	cmd.Flags().Bool("midside", false, "keep the midside nodes of every element")
	cmd.Flags().BoolP("verbose", "v", false, "print the resolved inputs to standard error")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	var (
		job *InputParameters.ReportFiles
		doc *mesh.Document
		f   mesh.Format
		b   []byte
	)
	if job, err = processInput(cmd); err != nil {
		return
	}
	if cmd.Flags().Changed("output") {
		job.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") || job.Format == "" {
		job.Format = viper.GetString("format")
	}
	if f, err = mesh.ParseFormat(job.Format); err != nil {
		return
	}
	if doc, err = convertJob(job); err != nil {
		return
	}
	if b, err = mesh.Encode(doc, f); err != nil {
		return
	}
	if job.Output == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return
	}
	if err = os.WriteFile(job.Output, b, 0o644); err != nil {
		return fmt.Errorf("writing mesh document: %w", err)
	}
	logger.Log.Info("wrote mesh document",
		zap.String("file", job.Output),
		zap.Stringer("format", f),
		zap.Int("vertices", len(doc.Coordinates)),
	)
	return
}

// processInput builds the job from the inputs file and the command flags
func processInput(cmd *cobra.Command) (job *InputParameters.ReportFiles, err error) {
	job = &InputParameters.ReportFiles{}
	if inputs, _ := cmd.Flags().GetString("inputs"); inputs != "" {
		var data []byte
		if data, err = os.ReadFile(inputs); err != nil {
			return nil, fmt.Errorf("reading inputs file: %w", err)
		}
		if err = job.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing inputs file %s: %w", inputs, err)
		}
	}
	for _, name := range readers.ReportNames {
		path, _ := cmd.Flags().GetString(name)
		if err = job.SetReport(name, path); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("midside") {
		job.Midside, _ = cmd.Flags().GetBool("midside")
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		job.Print(cmd.ErrOrStderr())
	}
	return
}

func convertJob(job *InputParameters.ReportFiles) (doc *mesh.Document, err error) {
	var (
		paths map[string]string
		src   readers.Sources
	)
	if paths, err = job.Paths(); err != nil {
		if errors.Is(err, readers.ErrMissingSource) {
			err = fmt.Errorf("%w\nname every report with -I or the report flags, example inputs file:%s",
				err, InputParameters.ExampleFile)
		}
		return
	}
	if src, err = readfiles.ReadReports(paths); err != nil {
		return
	}
	return mesh.Convert(src,
		mesh.WithMidsideNodes(job.Midside),
		mesh.WithLogger(logger.Log.Named("mesh")),
	)
}
