package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath      string
	Backend         string
	StoragePath     string
	StorageExists   bool // true = Found, false = Not Found
	DefaultCurrency string
	LogLevel        string
	Commands        int
	Accounts        int
	Transactions    int
}

func RenderSystemInfo(data SystemInfoItem) error {
	storageStatus := pterm.Green("Found")
	if !data.StorageExists {
		storageStatus = pterm.Red("Not Found (Will be created)")
	}
	configPath := data.ConfigPath
	if configPath == "" {
		configPath = pterm.Gray("(none, using defaults)")
	}

	tableData := pterm.TableData{
		{"Configuration File", configPath},
		{"Storage Backend", data.Backend},
		{"Storage Path", data.StoragePath},
		{"Storage Status", storageStatus},
		{"Default Currency", data.DefaultCurrency},
		{"Log Level", data.LogLevel},
	}
	if data.StorageExists {
		tableData = append(tableData,
			[]string{"Commands", pterm.Sprint(data.Commands)},
			[]string{"Accounts", pterm.Sprint(data.Accounts)},
			[]string{"Transactions", pterm.Sprint(data.Transactions)},
		)
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
