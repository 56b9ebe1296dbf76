package tool

// ScheduleTools returns the standard tool set for the schedule assistant, in
// the order the tools are advertised to the model.
func ScheduleTools() []Tool {
	return []Tool{
		NewFilterDateRangeTool(),
		NewScheduleTableTool(),
		NewAddEntryTool(),
		NewDeleteByFilterTool(),
		NewDeleteEntriesTool(),
		NewSelectEntriesTool(),
	}
}
