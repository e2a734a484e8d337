package scanner

import "github.com/petrarca/doc-architect/internal/model"

// Aggregate folds all scanner results into one architecture model.
// Findings keep execution order, so repeated runs over the same tree
// produce the same model; failed scanners contribute nothing here and
// surface in the quality report instead.
func Aggregate(projectName string, repo *model.RepositoryRef, results *Results) *model.ArchitectureModel {
	out := &model.ArchitectureModel{
		ProjectName: projectName,
		Repository:  repo,
	}

	for _, res := range results.All() {
		if !res.Success {
			continue
		}
		out.Components = append(out.Components, res.Components...)
		out.Dependencies = append(out.Dependencies, res.Dependencies...)
		out.ApiEndpoints = append(out.ApiEndpoints, res.ApiEndpoints...)
		out.MessageFlows = append(out.MessageFlows, res.MessageFlows...)
		out.DataEntities = append(out.DataEntities, res.DataEntities...)
		out.Relationships = append(out.Relationships, res.Relationships...)
	}

	return out
}
